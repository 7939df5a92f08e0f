package interfaces

import (
	"context"

	"github.com/Landon87/florida-crypto-lottery/domain/entities"
	"github.com/Landon87/florida-crypto-lottery/domain/events"
)

// DrawRecordRepository defines the interface for completed draw history
type DrawRecordRepository interface {
	// Create persists a completed draw record
	Create(ctx context.Context, record *entities.DrawRecord) error

	// ListRecent returns the most recently completed draws, newest first
	ListRecent(ctx context.Context, limit int) ([]*entities.DrawRecord, error)
}

// PayoutExecutor moves pot value to a winner over the ledger substrate.
// A failed transfer must be reported, never swallowed.
type PayoutExecutor interface {
	Pay(ctx context.Context, recipient string, amount int64) error
}

// RandomnessProvider issues asynchronous randomness requests to the
// external provider. The returned correlation id binds the request to
// its eventual delivery; the delivery itself arrives out of band.
type RandomnessProvider interface {
	RequestRandomWords(ctx context.Context, params entities.VRFParams) (string, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}
