package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Landon87/florida-crypto-lottery/domain/entities"
	"github.com/Landon87/florida-crypto-lottery/domain/events"
	"github.com/Landon87/florida-crypto-lottery/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// raffleService implements the round lifecycle. It owns the single active
// round and serializes every state-mutating operation (Enter,
// PerformUpkeep, HandleRandomnessDelivered) behind one lock; readers take
// the shared side so snapshots are never torn.
type raffleService struct {
	mu sync.RWMutex

	round    *entities.Round
	schedule entities.FeeSchedule
	vrf      entities.VRFParams

	provider       interfaces.RandomnessProvider
	payout         interfaces.PayoutExecutor
	drawRecordRepo interfaces.DrawRecordRepository
	eventPublisher interfaces.EventPublisher

	now func() time.Time
}

// NewRaffleService creates a new raffle service with a fresh open round
func NewRaffleService(
	schedule entities.FeeSchedule,
	vrf entities.VRFParams,
	provider interfaces.RandomnessProvider,
	payout interfaces.PayoutExecutor,
	drawRecordRepo interfaces.DrawRecordRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.RaffleService {
	return &raffleService{
		round:          entities.NewRound(time.Now()),
		schedule:       schedule,
		vrf:            vrf,
		provider:       provider,
		payout:         payout,
		drawRecordRepo: drawRecordRepo,
		eventPublisher: eventPublisher,
		now:            time.Now,
	}
}

// Enter adds a participant entry to the active round
func (s *raffleService) Enter(ctx context.Context, participant string, feePaid int64) (*interfaces.EntryResult, error) {
	if participant == "" {
		return nil, fmt.Errorf("participant is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if feePaid < s.schedule.TicketPrice {
		return nil, fmt.Errorf("fee %d below ticket price %d: %w", feePaid, s.schedule.TicketPrice, ErrInsufficientFee)
	}
	if !s.round.IsOpen() {
		return nil, fmt.Errorf("round state is %s: %w", s.round.State, ErrRoundNotOpen)
	}

	s.round.AddEntry(participant, feePaid)

	result := &interfaces.EntryResult{
		EntryIndex:  len(s.round.Entries) - 1,
		EntryCount:  len(s.round.Entries),
		PooledValue: s.round.PooledValue,
	}

	if err := s.eventPublisher.Publish(events.RaffleEnteredEvent{
		Participant: participant,
		FeePaid:     feePaid,
		EntryCount:  result.EntryCount,
		PooledValue: result.PooledValue,
	}); err != nil {
		log.WithError(err).Error("failed to publish raffle entered event")
	}

	return result, nil
}

// CheckUpkeep evaluates draw eligibility without side effects
func (s *raffleService) CheckUpkeep(now time.Time) interfaces.UpkeepStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return EvaluateUpkeep(s.round, s.schedule, now)
}

// PerformUpkeep starts a draw if the round is eligible. The eligibility
// re-check and the transition to calculating happen under the same lock
// so no entry or second draw can interleave.
func (s *raffleService) PerformUpkeep(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := EvaluateUpkeep(s.round, s.schedule, s.now())
	if !status.Eligible {
		return "", &UpkeepNotNeededError{
			State:             status.State,
			EntryCount:        status.EntryCount,
			PooledValue:       status.PooledValue,
			TimeSinceLastDraw: status.TimeSinceLastDraw,
		}
	}

	requestID, err := s.provider.RequestRandomWords(ctx, s.vrf)
	if err != nil {
		// The round stays open so the trigger source can retry later
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	s.round.BeginCalculating(requestID)

	log.WithFields(log.Fields{
		"requestId": requestID,
		"entries":   status.EntryCount,
		"pot":       status.PooledValue,
	}).Info("draw started, awaiting randomness delivery")

	if err := s.eventPublisher.Publish(events.DrawRequestedEvent{
		RequestID:   requestID,
		EntryCount:  status.EntryCount,
		PooledValue: status.PooledValue,
	}); err != nil {
		log.WithError(err).Error("failed to publish draw requested event")
	}

	return requestID, nil
}

// HandleRandomnessDelivered completes the round when a delivery matches
// the pending request. Stale, duplicate, or mismatched deliveries are
// reported as unhandled and never perturb state.
func (s *raffleService) HandleRandomnessDelivered(ctx context.Context, requestID string, words []uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.round.IsCalculating() || !s.round.MatchesPendingRequest(requestID) {
		log.WithFields(log.Fields{
			"requestId": requestID,
			"state":     s.round.State,
		}).Warn("ignoring randomness delivery with no matching pending request")
		return false, nil
	}

	if len(words) == 0 {
		log.WithField("requestId", requestID).Warn("ignoring randomness delivery with no random words")
		return false, nil
	}

	if len(s.round.Entries) == 0 {
		// Calculating is only reachable with a non-empty pool and entries
		// cannot shrink while calculating; reaching here is a bug in the
		// transition guards, not a recoverable runtime condition.
		panic(fmt.Sprintf("no entries at fulfillment of request %s", requestID))
	}

	winnerIndex := s.round.WinnerIndex(words[0])
	winner := s.round.Entries[winnerIndex]
	pot := s.round.PooledValue
	entryCount := len(s.round.Entries)

	if err := s.payout.Pay(ctx, winner, pot); err != nil {
		// The round is held in calculating with the winner determined but
		// unpaid: the pot must not be reset and no new round may open
		// until the payout is retried.
		log.WithError(err).WithFields(log.Fields{
			"requestId": requestID,
			"winner":    winner,
			"amount":    pot,
		}).Error("winner payout failed, round held awaiting retry")
		return true, fmt.Errorf("pay winner %s: %w", winner, ErrTransferFailed)
	}

	completedAt := s.now()

	record := &entities.DrawRecord{
		RequestID:     requestID,
		RandomWord:    int64(words[0]),
		WinnerAddress: winner,
		WinnerIndex:   winnerIndex,
		PotAmount:     pot,
		EntryCount:    entryCount,
		CompletedAt:   completedAt,
	}
	if err := s.drawRecordRepo.Create(ctx, record); err != nil {
		// The payout already succeeded; history is bookkeeping and must
		// not hold the round hostage
		log.WithError(err).WithField("requestId", requestID).Error("failed to record completed draw")
	}

	s.round.Complete(completedAt)

	if err := s.eventPublisher.Publish(events.WinnerPickedEvent{
		RequestID:   requestID,
		Winner:      winner,
		WinnerIndex: winnerIndex,
		Payout:      pot,
	}); err != nil {
		log.WithError(err).Error("failed to publish winner picked event")
	}

	log.WithFields(log.Fields{
		"requestId":   requestID,
		"winner":      winner,
		"winnerIndex": winnerIndex,
		"payout":      pot,
	}).Info("winner paid, round reopened")

	return true, nil
}

// Snapshot returns a consistent copy of the active round
func (s *raffleService) Snapshot() interfaces.RoundSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := interfaces.RoundSnapshot{
		State:        s.round.State,
		PooledValue:  s.round.PooledValue,
		LastDrawTime: s.round.LastDrawTime,
	}
	if len(s.round.Entries) > 0 {
		snapshot.Entries = make([]string, len(s.round.Entries))
		copy(snapshot.Entries, s.round.Entries)
	}
	if s.round.PendingRequestID != nil {
		pending := *s.round.PendingRequestID
		snapshot.PendingRequestID = &pending
	}
	return snapshot
}

// ListDraws returns recently completed draws, newest first
func (s *raffleService) ListDraws(ctx context.Context, limit int) ([]*entities.DrawRecord, error) {
	records, err := s.drawRecordRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list draw records: %w", err)
	}
	return records, nil
}
