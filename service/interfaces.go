package service

import (
	"context"

	"casino/events"
	"casino/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user with the given starting balance
	Create(ctx context.Context, username, password string, balance int64, ipAddress string) (*models.User, error)

	// CountByIP returns how many accounts were registered from the given address
	CountByIP(ctx context.Context, ipAddress string) (int64, error)

	// GetByUsername retrieves the newest user with the given username, or nil
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByUsernameForUpdate retrieves a user and locks the row for the transaction
	GetByUsernameForUpdate(ctx context.Context, username string) (*models.User, error)

	// UpdateBalance overwrites a user's balance unconditionally
	UpdateBalance(ctx context.Context, username string, newBalance int64) error

	// AddBalance applies a signed delta without flooring the result
	AddBalance(ctx context.Context, username string, delta int64) error

	// AddBalanceClamped applies a signed delta and floors the result at zero
	AddBalanceClamped(ctx context.Context, username string, delta int64) error

	// Ban marks a user as banned
	Ban(ctx context.Context, username string) error

	// SetLuckyMode grants a user lucky mode
	SetLuckyMode(ctx context.Context, username string) error

	// GetAll returns all users, most recently created first
	GetAll(ctx context.Context) ([]*models.User, error)
}

// BetRepository defines the interface for bet data access
type BetRepository interface {
	// Create inserts a new active bet
	Create(ctx context.Context, creator string, amount int64) (*models.Bet, error)

	// GetActive returns all active bets, most recently created first
	GetActive(ctx context.Context) ([]*models.Bet, error)

	// Settle flips a bet to inactive
	Settle(ctx context.Context, betID int64) error
}

// TransactionRepository defines the interface for the append-only transaction log
type TransactionRepository interface {
	// Append inserts a log entry stamped with the current time
	Append(ctx context.Context, entry *models.Transaction) error

	// GetByUser returns a user's log entries, most recent first
	GetByUser(ctx context.Context, username string, limit int) ([]*models.Transaction, error)
}

// PromoCodeRepository defines the interface for promo code data access
type PromoCodeRepository interface {
	// Create inserts a new promo code
	Create(ctx context.Context, code *models.PromoCode) error

	// GetByCodeForUpdate retrieves a promo code with its row locked, or nil
	GetByCodeForUpdate(ctx context.Context, code string) (*models.PromoCode, error)

	// DecrementActivations consumes one activation of the code
	DecrementActivations(ctx context.Context, code string) error

	// HasActivation reports whether the user has already redeemed the code
	HasActivation(ctx context.Context, username, code string) (bool, error)

	// RecordActivation inserts the redemption proof row
	RecordActivation(ctx context.Context, username, code string) error
}

// AccountService defines the interface for account ledger operations
type AccountService interface {
	// Register creates an account, enforcing the per-IP admission cap
	Register(ctx context.Context, username, password, ipAddress string) (*models.User, error)

	// Login authenticates a user; the credential check precedes the ban check
	Login(ctx context.Context, username, password string) (*models.LoginResult, error)

	// SetBalance overwrites a user's balance unconditionally
	SetBalance(ctx context.Context, username string, balance int64) error

	// ListUsers returns all users, most recently created first
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// WagerService defines the interface for peer-to-peer bet operations
type WagerService interface {
	// CreateBet opens a new active bet
	CreateBet(ctx context.Context, creator string, amount int64) (*models.Bet, error)

	// ListActiveBets returns open bets, most recently created first
	ListActiveBets(ctx context.Context) ([]*models.Bet, error)

	// AcceptBet settles a bet and moves the stake from loser to winner atomically
	AcceptBet(ctx context.Context, betID int64, winner, loser string, amount int64) error
}

// PromoService defines the interface for promo code operations
type PromoService interface {
	// Redeem consumes one activation of a code for a user, at most once per pair
	Redeem(ctx context.Context, username, code string) (*models.RedemptionResult, error)

	// CreateBalanceCode mints a code that credits amount on redemption
	CreateBalanceCode(ctx context.Context, code string, activations, amount int64) error

	// CreateLuckyCode mints a code that grants lucky mode on redemption
	CreateLuckyCode(ctx context.Context, code string, activations int64) error
}

// AdminService defines the interface for the admin command language
type AdminService interface {
	// ExecuteCommand parses and runs one admin command line
	ExecuteCommand(ctx context.Context, commandText string) error
}

// TransactionService defines the interface for the transaction log
type TransactionService interface {
	// Append records a balance-affecting event for a user
	Append(ctx context.Context, username, transactionType string, amount int64) error

	// History returns a user's most recent log entries
	History(ctx context.Context, username string) ([]*models.Transaction, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	BetRepository() BetRepository
	TransactionRepository() TransactionRepository
	PromoCodeRepository() PromoCodeRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
