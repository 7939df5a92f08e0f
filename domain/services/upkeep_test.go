package services

import (
	"testing"
	"time"

	"github.com/Landon87/florida-crypto-lottery/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateUpkeep(t *testing.T) {
	t.Parallel()

	schedule := entities.FeeSchedule{
		TicketPrice:  100,
		DrawInterval: time.Hour,
		MinPot:       0,
	}
	now := time.Now()

	tests := []struct {
		name         string
		setupRound   func() *entities.Round
		schedule     entities.FeeSchedule
		wantEligible bool
	}{
		{
			name: "all conditions hold",
			setupRound: func() *entities.Round {
				round := entities.NewRound(now.Add(-2 * time.Hour))
				round.AddEntry("alice", 100)
				return round
			},
			schedule:     schedule,
			wantEligible: true,
		},
		{
			name: "interval not elapsed",
			setupRound: func() *entities.Round {
				round := entities.NewRound(now.Add(-time.Minute))
				round.AddEntry("alice", 100)
				return round
			},
			schedule:     schedule,
			wantEligible: false,
		},
		{
			name: "round not open",
			setupRound: func() *entities.Round {
				round := entities.NewRound(now.Add(-2 * time.Hour))
				round.AddEntry("alice", 100)
				round.BeginCalculating("req-1")
				return round
			},
			schedule:     schedule,
			wantEligible: false,
		},
		{
			name: "no entries",
			setupRound: func() *entities.Round {
				return entities.NewRound(now.Add(-2 * time.Hour))
			},
			schedule:     schedule,
			wantEligible: false,
		},
		{
			name: "pot below configured minimum",
			setupRound: func() *entities.Round {
				round := entities.NewRound(now.Add(-2 * time.Hour))
				round.AddEntry("alice", 100)
				return round
			},
			schedule: entities.FeeSchedule{
				TicketPrice:  100,
				DrawInterval: time.Hour,
				MinPot:       500,
			},
			wantEligible: false,
		},
		{
			name: "interval boundary is inclusive",
			setupRound: func() *entities.Round {
				round := entities.NewRound(now.Add(-time.Hour))
				round.AddEntry("alice", 100)
				return round
			},
			schedule:     schedule,
			wantEligible: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			round := tt.setupRound()
			status := EvaluateUpkeep(round, tt.schedule, now)

			assert.Equal(t, tt.wantEligible, status.Eligible)
			assert.Equal(t, round.State, status.State)
			assert.Equal(t, len(round.Entries), status.EntryCount)
			assert.Equal(t, round.PooledValue, status.PooledValue)
		})
	}
}

func TestEvaluateUpkeep_NoSideEffects(t *testing.T) {
	t.Parallel()

	round := entities.NewRound(time.Now().Add(-2 * time.Hour))
	round.AddEntry("alice", 100)
	entriesBefore := len(round.Entries)
	potBefore := round.PooledValue
	stateBefore := round.State

	EvaluateUpkeep(round, entities.FeeSchedule{DrawInterval: time.Hour}, time.Now())

	assert.Equal(t, entriesBefore, len(round.Entries))
	assert.Equal(t, potBefore, round.PooledValue)
	assert.Equal(t, stateBefore, round.State)
}
