package repository

import (
	"context"
	"fmt"

	"casino/database"
	"casino/models"
	"github.com/jackc/pgx/v5"
)

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `id, username, password, balance, banned, lucky_mode, ip_address, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Balance,
		&user.Banned,
		&user.LuckyMode,
		&user.IPAddress,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create creates a new user with the given starting balance.
// No uniqueness check is performed on the username.
func (r *UserRepository) Create(ctx context.Context, username, password string, balance int64, ipAddress string) (*models.User, error) {
	query := `
		INSERT INTO users (username, password, balance, ip_address)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, username, password, balance, ipAddress))
	if err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", username, err)
	}
	return user, nil
}

// CountByIP returns how many accounts were registered from the given address.
func (r *UserRepository) CountByIP(ctx context.Context, ipAddress string) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE ip_address = $1`, ipAddress).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users for ip %q: %w", ipAddress, err)
	}
	return count, nil
}

// GetByUsername retrieves the most recently created user with the given
// username, or nil if none exists. Usernames are not unique in the store;
// the newest row wins.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	user, err := scanUser(r.q.QueryRow(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	return user, nil
}

// GetByUsernameForUpdate retrieves a user and locks the row for the duration
// of the surrounding transaction.
func (r *UserRepository) GetByUsernameForUpdate(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE
	`

	user, err := scanUser(r.q.QueryRow(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("failed to lock user %q: %w", username, err)
	}
	return user, nil
}

// UpdateBalance overwrites a user's balance unconditionally. Any signed value
// is accepted, including negative ones; updating a nonexistent user is a no-op.
func (r *UserRepository) UpdateBalance(ctx context.Context, username string, newBalance int64) error {
	query := `
		UPDATE users
		SET balance = $1, updated_at = NOW()
		WHERE username = $2
	`

	if _, err := r.q.Exec(ctx, query, newBalance, username); err != nil {
		return fmt.Errorf("failed to update balance for user %q: %w", username, err)
	}
	return nil
}

// AddBalance applies a signed delta to a user's balance. The result is not
// floored: a negative delta may drive the balance below zero.
func (r *UserRepository) AddBalance(ctx context.Context, username string, delta int64) error {
	query := `
		UPDATE users
		SET balance = balance + $1, updated_at = NOW()
		WHERE username = $2
	`

	if _, err := r.q.Exec(ctx, query, delta, username); err != nil {
		return fmt.Errorf("failed to add balance for user %q: %w", username, err)
	}
	return nil
}

// AddBalanceClamped applies a signed delta and floors the result at zero.
// This is the admin deduction path; bet settlement deliberately does not clamp.
func (r *UserRepository) AddBalanceClamped(ctx context.Context, username string, delta int64) error {
	query := `
		UPDATE users
		SET balance = GREATEST(0, balance + $1), updated_at = NOW()
		WHERE username = $2
	`

	if _, err := r.q.Exec(ctx, query, delta, username); err != nil {
		return fmt.Errorf("failed to adjust balance for user %q: %w", username, err)
	}
	return nil
}

// Ban marks a user as banned. Bans are never cleared by this service.
func (r *UserRepository) Ban(ctx context.Context, username string) error {
	query := `
		UPDATE users
		SET banned = TRUE, updated_at = NOW()
		WHERE username = $1
	`

	if _, err := r.q.Exec(ctx, query, username); err != nil {
		return fmt.Errorf("failed to ban user %q: %w", username, err)
	}
	return nil
}

// SetLuckyMode grants a user lucky mode. The flag is never cleared.
func (r *UserRepository) SetLuckyMode(ctx context.Context, username string) error {
	query := `
		UPDATE users
		SET lucky_mode = TRUE, updated_at = NOW()
		WHERE username = $1
	`

	if _, err := r.q.Exec(ctx, query, username); err != nil {
		return fmt.Errorf("failed to set lucky mode for user %q: %w", username, err)
	}
	return nil
}

// GetAll returns all users, most recently created first.
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Password,
			&user.Balance,
			&user.Banned,
			&user.LuckyMode,
			&user.IPAddress,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}
