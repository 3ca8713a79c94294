package service

import (
	"context"
	"fmt"

	"casino/events"
	"casino/models"

	log "github.com/sirupsen/logrus"
)

// accountService implements the AccountService interface
type accountService struct {
	uowFactory      UnitOfWorkFactory
	comparer        CredentialComparer
	startingBalance int64
	maxPerIP        int64
}

// NewAccountService creates a new account service
func NewAccountService(uowFactory UnitOfWorkFactory, comparer CredentialComparer, startingBalance, maxPerIP int64) AccountService {
	return &accountService{
		uowFactory:      uowFactory,
		comparer:        comparer,
		startingBalance: startingBalance,
		maxPerIP:        maxPerIP,
	}
}

// Register creates an account, enforcing the per-IP admission cap. Duplicate
// usernames are accepted; the store performs no uniqueness check.
func (s *accountService) Register(ctx context.Context, username, password, ipAddress string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	count, err := uow.UserRepository().CountByIP(ctx, ipAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts for ip: %w", err)
	}
	if count >= s.maxPerIP {
		return nil, ErrAdmissionDenied
	}

	user, err := uow.UserRepository().Create(ctx, username, password, s.startingBalance, ipAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uow.EventBus().Publish(events.UserCreatedEvent{
		Username:       username,
		IPAddress:      ipAddress,
		InitialBalance: s.startingBalance,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"username": username,
		"ip":       ipAddress,
	}).Info("Registered new user")

	return user, nil
}

// Login authenticates a user. The credential check precedes the ban check:
// a banned user with wrong credentials sees ErrInvalidCredentials, not ErrBanned.
func (s *accountService) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !s.comparer.Compare(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if user.Banned {
		return nil, ErrBanned
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.LoginResult{
		Balance:   user.Balance,
		LuckyMode: user.LuckyMode,
	}, nil
}

// SetBalance overwrites a user's balance unconditionally. No floor or
// ceiling applies here; the admin deduction path is the only clamped write.
func (s *accountService) SetBalance(ctx context.Context, username string, balance int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().UpdateBalance(ctx, username, balance); err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		Username:   username,
		Reason:     "set_balance",
		NewBalance: &balance,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListUsers returns all users, most recently created first. The password
// field rides along for compatibility with the existing admin frontend.
func (s *accountService) ListUsers(ctx context.Context) ([]*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return users, nil
}
