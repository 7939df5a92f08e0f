package repository

import (
	"context"
	"fmt"

	"github.com/Landon87/florida-crypto-lottery/database"
	"github.com/Landon87/florida-crypto-lottery/infrastructure/observability"
)

// PayoutRepository executes winner payouts against the ledger tables.
// The balance credit and the payout row are committed in one transaction
// so a rejected transfer leaves no partial ledger state behind.
type PayoutRepository struct {
	db      *database.DB
	metrics *observability.MetricsProvider
}

// NewPayoutRepository creates a new payout repository
func NewPayoutRepository(db *database.DB, metrics *observability.MetricsProvider) *PayoutRepository {
	return &PayoutRepository{
		db:      db,
		metrics: metrics,
	}
}

// Pay transfers the given amount to the recipient's ledger balance
func (r *PayoutRepository) Pay(ctx context.Context, recipient string, amount int64) error {
	defer r.metrics.TimeDatabaseQuery("payout", "Pay")()

	if recipient == "" {
		return fmt.Errorf("payout recipient is required")
	}
	if amount <= 0 {
		return fmt.Errorf("payout amount must be positive, got %d", amount)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin payout transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	creditQuery := `
		INSERT INTO balances (address, balance, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (address)
		DO UPDATE SET balance = balances.balance + EXCLUDED.balance, updated_at = now()
	`
	if _, err := tx.Exec(ctx, creditQuery, recipient, amount); err != nil {
		return fmt.Errorf("failed to credit winner balance: %w", err)
	}

	payoutQuery := `
		INSERT INTO payouts (recipient, amount)
		VALUES ($1, $2)
	`
	if _, err := tx.Exec(ctx, payoutQuery, recipient, amount); err != nil {
		return fmt.Errorf("failed to record payout: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit payout transaction: %w", err)
	}

	return nil
}
