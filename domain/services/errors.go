package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Landon87/florida-crypto-lottery/domain/entities"
)

var (
	// ErrInsufficientFee is returned when an entry fee is below the ticket price
	ErrInsufficientFee = errors.New("entry fee is below the ticket price")

	// ErrRoundNotOpen is returned when an entry arrives while a draw is in flight
	ErrRoundNotOpen = errors.New("round is not open for entries")

	// ErrProviderUnavailable is returned when a randomness request could not
	// be submitted; the round stays open and the trigger may retry later
	ErrProviderUnavailable = errors.New("randomness provider unavailable")

	// ErrTransferFailed is returned when the winner payout was rejected; the
	// round stays calculating with the winner determined but unpaid
	ErrTransferFailed = errors.New("payout transfer failed")
)

// UpkeepNotNeededError reports that a draw could not start, carrying the
// state the eligibility check observed
type UpkeepNotNeededError struct {
	State             entities.RoundState
	EntryCount        int
	PooledValue       int64
	TimeSinceLastDraw time.Duration
}

func (e *UpkeepNotNeededError) Error() string {
	return fmt.Sprintf("upkeep not needed: state=%s entries=%d pot=%d elapsed=%s",
		e.State, e.EntryCount, e.PooledValue, e.TimeSinceLastDraw)
}
