package repository

import (
	"context"
	"fmt"

	"casino/database"
	"casino/models"
	"github.com/jackc/pgx/v5"
)

// PromoCodeRepository implements the service.PromoCodeRepository interface
type PromoCodeRepository struct {
	q queryable
}

// NewPromoCodeRepository creates a new promo code repository
func NewPromoCodeRepository(db *database.DB) *PromoCodeRepository {
	return &PromoCodeRepository{q: db.Pool}
}

// newPromoCodeRepositoryWithTx creates a new promo code repository with a transaction
func newPromoCodeRepositoryWithTx(tx queryable) *PromoCodeRepository {
	return &PromoCodeRepository{q: tx}
}

// Create inserts a new promo code.
func (r *PromoCodeRepository) Create(ctx context.Context, code *models.PromoCode) error {
	query := `
		INSERT INTO promo_codes (code, kind, amount, activations_left)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query, code.Code, code.Kind, code.Amount, code.ActivationsLeft).
		Scan(&code.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create promo code %q: %w", code.Code, err)
	}
	return nil
}

// GetByCodeForUpdate retrieves a promo code and locks its row for the
// duration of the surrounding transaction, or returns nil if none exists.
// The lock serializes concurrent redemptions of the same code.
func (r *PromoCodeRepository) GetByCodeForUpdate(ctx context.Context, code string) (*models.PromoCode, error) {
	query := `
		SELECT code, kind, amount, activations_left, created_at
		FROM promo_codes
		WHERE code = $1
		FOR UPDATE
	`

	var promo models.PromoCode
	err := r.q.QueryRow(ctx, query, code).Scan(
		&promo.Code,
		&promo.Kind,
		&promo.Amount,
		&promo.ActivationsLeft,
		&promo.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get promo code %q: %w", code, err)
	}

	return &promo, nil
}

// DecrementActivations consumes one activation of the code.
func (r *PromoCodeRepository) DecrementActivations(ctx context.Context, code string) error {
	query := `
		UPDATE promo_codes
		SET activations_left = activations_left - 1
		WHERE code = $1
	`

	if _, err := r.q.Exec(ctx, query, code); err != nil {
		return fmt.Errorf("failed to decrement activations for code %q: %w", code, err)
	}
	return nil
}

// HasActivation reports whether the user has already redeemed the code.
func (r *PromoCodeRepository) HasActivation(ctx context.Context, username, code string) (bool, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM code_activations WHERE username = $1 AND code = $2`,
		username, code,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check activation of %q by %q: %w", code, username, err)
	}
	return count > 0, nil
}

// RecordActivation inserts the redemption proof row. The (username, code)
// primary key rejects a second insert for the same pair.
func (r *PromoCodeRepository) RecordActivation(ctx context.Context, username, code string) error {
	query := `
		INSERT INTO code_activations (username, code)
		VALUES ($1, $2)
	`

	if _, err := r.q.Exec(ctx, query, username, code); err != nil {
		return fmt.Errorf("failed to record activation of %q by %q: %w", code, username, err)
	}
	return nil
}
