package infrastructure

import (
	"testing"

	"github.com/Landon87/florida-crypto-lottery/domain/events"

	"github.com/stretchr/testify/assert"
)

func TestEventSubjectMapper(t *testing.T) {
	t.Parallel()

	mapper := NewEventSubjectMapper()

	tests := []struct {
		name    string
		event   events.Event
		subject string
	}{
		{
			name:    "raffle entered",
			event:   events.RaffleEnteredEvent{Participant: "alice"},
			subject: "raffle.entered",
		},
		{
			name:    "draw requested",
			event:   events.DrawRequestedEvent{RequestID: "req-1"},
			subject: "raffle.draw_requested",
		},
		{
			name:    "winner picked",
			event:   events.WinnerPickedEvent{RequestID: "req-1", Winner: "alice"},
			subject: "raffle.winner_picked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			subject := mapper.MapEventToSubject(tt.event)
			assert.Equal(t, tt.subject, subject)
			assert.Equal(t, tt.event.Type(), mapper.MapSubjectToEventType(subject))
		})
	}
}

func TestEventSubjectMapper_GetAllSubjects(t *testing.T) {
	t.Parallel()

	mapper := NewEventSubjectMapper()
	subjects := mapper.GetAllSubjects()

	assert.Len(t, subjects, 3)
	assert.Contains(t, subjects, "raffle.entered")
	assert.Contains(t, subjects, "raffle.draw_requested")
	assert.Contains(t, subjects, "raffle.winner_picked")
}
