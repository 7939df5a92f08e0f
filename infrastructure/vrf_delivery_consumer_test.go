package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Landon87/florida-crypto-lottery/domain/entities"
	"github.com/Landon87/florida-crypto-lottery/domain/interfaces"
	"github.com/Landon87/florida-crypto-lottery/domain/services"
	"github.com/Landon87/florida-crypto-lottery/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newConsumerFixture builds a consumer over a real raffle service so the
// delivery handling exercises the actual round lifecycle. A zero draw
// interval makes the round eligible as soon as it has entries.
func newConsumerFixture(payout *testhelpers.MockPayoutExecutor) (*VRFDeliveryConsumer, interfaces.RaffleService, *testhelpers.MockRandomnessProvider) {
	provider := new(testhelpers.MockRandomnessProvider)
	drawRepo := new(testhelpers.MockDrawRecordRepository)
	drawRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	schedule := entities.FeeSchedule{TicketPrice: 100, DrawInterval: 0}
	raffle := services.NewRaffleService(schedule, entities.VRFParams{NumWords: 1}, provider, payout, drawRepo, NewNoopEventPublisher())

	return NewVRFDeliveryConsumer(nil, raffle, nil), raffle, provider
}

func startDraw(t *testing.T, raffle interfaces.RaffleService, provider *testhelpers.MockRandomnessProvider, participants ...string) {
	t.Helper()

	provider.On("RequestRandomWords", mock.Anything, mock.Anything).Return("req-1", nil)
	for _, participant := range participants {
		_, err := raffle.Enter(context.Background(), participant, 100)
		require.NoError(t, err)
	}
	_, err := raffle.PerformUpkeep(context.Background())
	require.NoError(t, err)
}

func deliveryPayload(t *testing.T, requestID string, words []uint64) []byte {
	t.Helper()

	data, err := json.Marshal(vrfDeliveryMessage{RequestID: requestID, RandomWords: words})
	require.NoError(t, err)
	return data
}

func TestVRFDeliveryConsumer_HandleDelivery(t *testing.T) {
	t.Parallel()

	t.Run("malformed payload is dropped without redelivery", func(t *testing.T) {
		t.Parallel()

		payout := new(testhelpers.MockPayoutExecutor)
		consumer, raffle, provider := newConsumerFixture(payout)
		startDraw(t, raffle, provider, "alice")

		err := consumer.handleDelivery([]byte("{not json"))

		assert.NoError(t, err)
		assert.Equal(t, entities.RoundStateCalculating, raffle.Snapshot().State)
		payout.AssertNotCalled(t, "Pay", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unmatched delivery is dropped without redelivery", func(t *testing.T) {
		t.Parallel()

		payout := new(testhelpers.MockPayoutExecutor)
		consumer, raffle, provider := newConsumerFixture(payout)
		startDraw(t, raffle, provider, "alice")

		err := consumer.handleDelivery(deliveryPayload(t, "req-stale", []uint64{7}))

		assert.NoError(t, err)
		assert.Equal(t, entities.RoundStateCalculating, raffle.Snapshot().State)
		payout.AssertNotCalled(t, "Pay", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("payout failure is surfaced so the message is redelivered", func(t *testing.T) {
		t.Parallel()

		payout := new(testhelpers.MockPayoutExecutor)
		payout.On("Pay", mock.Anything, "alice", int64(100)).
			Return(errors.New("recipient rejected transfer")).Once()
		payout.On("Pay", mock.Anything, "alice", int64(100)).Return(nil).Once()
		consumer, raffle, provider := newConsumerFixture(payout)
		startDraw(t, raffle, provider, "alice")

		err := consumer.handleDelivery(deliveryPayload(t, "req-1", []uint64{7}))

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrTransferFailed)
		assert.Equal(t, entities.RoundStateCalculating, raffle.Snapshot().State)

		// The redelivered message retries the payout and completes the round
		err = consumer.handleDelivery(deliveryPayload(t, "req-1", []uint64{7}))
		assert.NoError(t, err)
		assert.Equal(t, entities.RoundStateOpen, raffle.Snapshot().State)
	})

	t.Run("matched delivery pays the winner and reopens the round", func(t *testing.T) {
		t.Parallel()

		payout := new(testhelpers.MockPayoutExecutor)
		payout.On("Pay", mock.Anything, "carol", int64(300)).Return(nil)
		consumer, raffle, provider := newConsumerFixture(payout)
		startDraw(t, raffle, provider, "alice", "bob", "carol")

		// 5 mod 3 == 2, carol takes the 300 pot
		err := consumer.handleDelivery(deliveryPayload(t, "req-1", []uint64{5}))

		assert.NoError(t, err)
		payout.AssertCalled(t, "Pay", mock.Anything, "carol", int64(300))

		snapshot := raffle.Snapshot()
		assert.Equal(t, entities.RoundStateOpen, snapshot.State)
		assert.Empty(t, snapshot.Entries)
		assert.Zero(t, snapshot.PooledValue)
		assert.WithinDuration(t, time.Now(), snapshot.LastDrawTime, time.Minute)
	})
}
