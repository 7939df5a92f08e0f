package interfaces

import (
	"context"
	"time"

	"github.com/Landon87/florida-crypto-lottery/domain/entities"
)

// RoundSnapshot is a consistent read-only view of the active round
type RoundSnapshot struct {
	State            entities.RoundState
	Entries          []string
	PooledValue      int64
	LastDrawTime     time.Time
	PendingRequestID *string
}

// EntryCount returns the number of entries in the snapshot
func (s RoundSnapshot) EntryCount() int {
	return len(s.Entries)
}

// UpkeepStatus is the result of an eligibility evaluation, carrying the
// diagnostic state trigger sources need to tell "not yet time" apart
// from "no players" or "draw already in flight"
type UpkeepStatus struct {
	Eligible          bool
	State             entities.RoundState
	EntryCount        int
	PooledValue       int64
	TimeSinceLastDraw time.Duration
}

// EntryResult is returned to a participant who entered the round
type EntryResult struct {
	EntryIndex  int
	EntryCount  int
	PooledValue int64
}

// RaffleService orchestrates the round lifecycle: entry collection,
// eligibility-gated draw starts, randomness correlation, and payout
type RaffleService interface {
	// Enter adds a participant to the active round for the given fee
	Enter(ctx context.Context, participant string, feePaid int64) (*EntryResult, error)

	// CheckUpkeep evaluates draw eligibility without side effects
	CheckUpkeep(now time.Time) UpkeepStatus

	// PerformUpkeep starts a draw if eligible and returns the randomness
	// request correlation id
	PerformUpkeep(ctx context.Context) (string, error)

	// HandleRandomnessDelivered is the provider callback. It reports
	// whether the delivery matched the pending request; mismatched or
	// stale deliveries are ignored without error.
	HandleRandomnessDelivered(ctx context.Context, requestID string, words []uint64) (bool, error)

	// Snapshot returns a consistent view of the active round
	Snapshot() RoundSnapshot

	// ListDraws returns recently completed draws, newest first
	ListDraws(ctx context.Context, limit int) ([]*entities.DrawRecord, error)
}
