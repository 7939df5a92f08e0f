package testhelpers

import (
	"context"
	"time"

	"github.com/Landon87/florida-crypto-lottery/domain/entities"
	"github.com/Landon87/florida-crypto-lottery/domain/events"
	"github.com/Landon87/florida-crypto-lottery/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockDrawRecordRepository is a mock implementation of DrawRecordRepository
type MockDrawRecordRepository struct {
	mock.Mock
}

func (m *MockDrawRecordRepository) Create(ctx context.Context, record *entities.DrawRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockDrawRecordRepository) ListRecent(ctx context.Context, limit int) ([]*entities.DrawRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DrawRecord), args.Error(1)
}

// MockPayoutExecutor is a mock implementation of PayoutExecutor
type MockPayoutExecutor struct {
	mock.Mock
}

func (m *MockPayoutExecutor) Pay(ctx context.Context, recipient string, amount int64) error {
	args := m.Called(ctx, recipient, amount)
	return args.Error(0)
}

// MockRandomnessProvider is a mock implementation of RandomnessProvider
type MockRandomnessProvider struct {
	mock.Mock
}

func (m *MockRandomnessProvider) RequestRandomWords(ctx context.Context, params entities.VRFParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockRaffleService is a mock implementation of RaffleService
type MockRaffleService struct {
	mock.Mock
}

func (m *MockRaffleService) Enter(ctx context.Context, participant string, feePaid int64) (*interfaces.EntryResult, error) {
	args := m.Called(ctx, participant, feePaid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.EntryResult), args.Error(1)
}

func (m *MockRaffleService) CheckUpkeep(now time.Time) interfaces.UpkeepStatus {
	args := m.Called(now)
	return args.Get(0).(interfaces.UpkeepStatus)
}

func (m *MockRaffleService) PerformUpkeep(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockRaffleService) HandleRandomnessDelivered(ctx context.Context, requestID string, words []uint64) (bool, error) {
	args := m.Called(ctx, requestID, words)
	return args.Bool(0), args.Error(1)
}

func (m *MockRaffleService) Snapshot() interfaces.RoundSnapshot {
	args := m.Called()
	return args.Get(0).(interfaces.RoundSnapshot)
}

func (m *MockRaffleService) ListDraws(ctx context.Context, limit int) ([]*entities.DrawRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DrawRecord), args.Error(1)
}
