package services

import (
	"time"

	"github.com/Landon87/florida-crypto-lottery/domain/entities"
	"github.com/Landon87/florida-crypto-lottery/domain/interfaces"
)

// EvaluateUpkeep reports whether a draw may start for the given round.
// All four conditions must hold: the interval has elapsed since the last
// draw, the round is open, the pot meets the minimum, and the round has
// at least one entry. The function has no side effects and is safe to
// call at any time.
func EvaluateUpkeep(round *entities.Round, schedule entities.FeeSchedule, now time.Time) interfaces.UpkeepStatus {
	elapsed := now.Sub(round.LastDrawTime)

	status := interfaces.UpkeepStatus{
		State:             round.State,
		EntryCount:        len(round.Entries),
		PooledValue:       round.PooledValue,
		TimeSinceLastDraw: elapsed,
	}

	status.Eligible = elapsed >= schedule.DrawInterval &&
		round.IsOpen() &&
		round.PooledValue >= schedule.MinPot &&
		len(round.Entries) > 0

	return status
}
