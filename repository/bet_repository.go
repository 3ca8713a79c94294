package repository

import (
	"context"
	"fmt"

	"casino/database"
	"casino/models"
)

// BetRepository implements the service.BetRepository interface
type BetRepository struct {
	q queryable
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *database.DB) *BetRepository {
	return &BetRepository{q: db.Pool}
}

// newBetRepositoryWithTx creates a new bet repository with a transaction
func newBetRepositoryWithTx(tx queryable) *BetRepository {
	return &BetRepository{q: tx}
}

// Create inserts a new active bet; the id is assigned by the store.
func (r *BetRepository) Create(ctx context.Context, creator string, amount int64) (*models.Bet, error) {
	query := `
		INSERT INTO bets (creator, amount)
		VALUES ($1, $2)
		RETURNING id, creator, amount, active, created_at
	`

	var bet models.Bet
	err := r.q.QueryRow(ctx, query, creator, amount).Scan(
		&bet.ID,
		&bet.Creator,
		&bet.Amount,
		&bet.Active,
		&bet.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bet for %q: %w", creator, err)
	}

	return &bet, nil
}

// GetActive returns all active bets, most recently created first.
func (r *BetRepository) GetActive(ctx context.Context) ([]*models.Bet, error) {
	query := `
		SELECT id, creator, amount, active, created_at
		FROM bets
		WHERE active = TRUE
		ORDER BY created_at DESC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active bets: %w", err)
	}
	defer rows.Close()

	var bets []*models.Bet
	for rows.Next() {
		var bet models.Bet
		err := rows.Scan(
			&bet.ID,
			&bet.Creator,
			&bet.Amount,
			&bet.Active,
			&bet.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, &bet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bets: %w", err)
	}

	return bets, nil
}

// Settle flips a bet to inactive. The caller is trusted to name a real bet;
// settling an unknown or already-settled id is a no-op.
func (r *BetRepository) Settle(ctx context.Context, betID int64) error {
	query := `
		UPDATE bets
		SET active = FALSE
		WHERE id = $1
	`

	if _, err := r.q.Exec(ctx, query, betID); err != nil {
		return fmt.Errorf("failed to settle bet %d: %w", betID, err)
	}
	return nil
}
