package repository

import (
	"context"
	"fmt"

	"casino/database"
	"casino/models"
)

// TransactionRepository implements the service.TransactionRepository interface
type TransactionRepository struct {
	q queryable
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *database.DB) *TransactionRepository {
	return &TransactionRepository{q: db.Pool}
}

// newTransactionRepositoryWithTx creates a new transaction repository with a transaction
func newTransactionRepositoryWithTx(tx queryable) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

// Append inserts a log entry stamped with the current time. Entries are
// never updated or deleted.
func (r *TransactionRepository) Append(ctx context.Context, entry *models.Transaction) error {
	query := `
		INSERT INTO transactions (username, type, amount)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, entry.Username, entry.Type, entry.Amount).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append transaction for user %q: %w", entry.Username, err)
	}
	return nil
}

// GetByUser returns a user's log entries, most recent first.
func (r *TransactionRepository) GetByUser(ctx context.Context, username string, limit int) ([]*models.Transaction, error) {
	query := `
		SELECT id, username, type, amount, created_at
		FROM transactions
		WHERE username = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, username, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for user %q: %w", username, err)
	}
	defer rows.Close()

	var entries []*models.Transaction
	for rows.Next() {
		var entry models.Transaction
		err := rows.Scan(
			&entry.ID,
			&entry.Username,
			&entry.Type,
			&entry.Amount,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return entries, nil
}
