package infrastructure

import (
	"context"
	"errors"
	"testing"

	"github.com/Landon87/florida-crypto-lottery/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNATSEventPublisher_LocalHandlers(t *testing.T) {
	t.Parallel()

	// The client is never connected; local handlers must still run before
	// the NATS publish is attempted
	newDisconnectedPublisher := func() *NATSEventPublisher {
		return NewNATSEventPublisher(NewNATSClient("nats://localhost:4222"), NewEventSubjectMapper(), nil)
	}

	t.Run("registered handlers receive matching events", func(t *testing.T) {
		t.Parallel()

		publisher := newDisconnectedPublisher()

		var received []events.Event
		publisher.RegisterLocalHandler(events.EventTypeWinnerPicked, func(ctx context.Context, event events.Event) error {
			received = append(received, event)
			return nil
		})

		event := events.WinnerPickedEvent{RequestID: "req-1", Winner: "alice", Payout: 100}
		err := publisher.Publish(event)

		// The transport publish fails without a connection, but the local
		// dispatch already happened
		assert.Error(t, err)
		require.Len(t, received, 1)
		assert.Equal(t, event, received[0])
	})

	t.Run("handlers for other event types are not invoked", func(t *testing.T) {
		t.Parallel()

		publisher := newDisconnectedPublisher()

		invoked := false
		publisher.RegisterLocalHandler(events.EventTypeWinnerPicked, func(ctx context.Context, event events.Event) error {
			invoked = true
			return nil
		})

		_ = publisher.Publish(events.RaffleEnteredEvent{Participant: "alice"})
		assert.False(t, invoked)
	})

	t.Run("a failing handler does not block later handlers", func(t *testing.T) {
		t.Parallel()

		publisher := newDisconnectedPublisher()

		publisher.RegisterLocalHandler(events.EventTypeDrawRequested, func(ctx context.Context, event events.Event) error {
			return errors.New("handler failed")
		})

		secondInvoked := false
		publisher.RegisterLocalHandler(events.EventTypeDrawRequested, func(ctx context.Context, event events.Event) error {
			secondInvoked = true
			return nil
		})

		_ = publisher.Publish(events.DrawRequestedEvent{RequestID: "req-1"})
		assert.True(t, secondInvoked)
	})
}

func TestNoopEventPublisher_Publish(t *testing.T) {
	t.Parallel()

	publisher := NewNoopEventPublisher()
	assert.NoError(t, publisher.Publish(events.RaffleEnteredEvent{Participant: "alice"}))
	assert.NoError(t, publisher.Publish(events.WinnerPickedEvent{RequestID: "req-1"}))
}
