package service

import (
	"context"

	"casino/events"
	"casino/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, username, password string, balance int64, ipAddress string) (*models.User, error) {
	args := m.Called(ctx, username, password, balance, ipAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) CountByIP(ctx context.Context, ipAddress string) (int64, error) {
	args := m.Called(ctx, ipAddress)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsernameForUpdate(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateBalance(ctx context.Context, username string, newBalance int64) error {
	args := m.Called(ctx, username, newBalance)
	return args.Error(0)
}

func (m *MockUserRepository) AddBalance(ctx context.Context, username string, delta int64) error {
	args := m.Called(ctx, username, delta)
	return args.Error(0)
}

func (m *MockUserRepository) AddBalanceClamped(ctx context.Context, username string, delta int64) error {
	args := m.Called(ctx, username, delta)
	return args.Error(0)
}

func (m *MockUserRepository) Ban(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *MockUserRepository) SetLuckyMode(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// MockBetRepository is a mock implementation of BetRepository
type MockBetRepository struct {
	mock.Mock
}

func (m *MockBetRepository) Create(ctx context.Context, creator string, amount int64) (*models.Bet, error) {
	args := m.Called(ctx, creator, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *MockBetRepository) GetActive(ctx context.Context) ([]*models.Bet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bet), args.Error(1)
}

func (m *MockBetRepository) Settle(ctx context.Context, betID int64) error {
	args := m.Called(ctx, betID)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Append(ctx context.Context, entry *models.Transaction) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByUser(ctx context.Context, username string, limit int) ([]*models.Transaction, error) {
	args := m.Called(ctx, username, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

// MockPromoCodeRepository is a mock implementation of PromoCodeRepository
type MockPromoCodeRepository struct {
	mock.Mock
}

func (m *MockPromoCodeRepository) Create(ctx context.Context, code *models.PromoCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockPromoCodeRepository) GetByCodeForUpdate(ctx context.Context, code string) (*models.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromoCode), args.Error(1)
}

func (m *MockPromoCodeRepository) DecrementActivations(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockPromoCodeRepository) HasActivation(ctx context.Context, username, code string) (bool, error) {
	args := m.Called(ctx, username, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockPromoCodeRepository) RecordActivation(ctx context.Context, username, code string) error {
	args := m.Called(ctx, username, code)
	return args.Error(0)
}

// RecordingPublisher collects published events for assertions.
type RecordingPublisher struct {
	Events []events.Event
}

func (p *RecordingPublisher) Publish(e events.Event) {
	p.Events = append(p.Events, e)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repository getters
// return whatever was installed with SetRepositories; Begin/Commit/Rollback
// go through the mock expectations.
type MockUnitOfWork struct {
	mock.Mock
	userRepo        UserRepository
	betRepo         BetRepository
	transactionRepo TransactionRepository
	promoCodeRepo   PromoCodeRepository
	publisher       RecordingPublisher
}

// SetRepositories installs the repositories the unit of work hands out.
func (m *MockUnitOfWork) SetRepositories(user UserRepository, bet BetRepository, txn TransactionRepository, promo PromoCodeRepository) {
	m.userRepo = user
	m.betRepo = bet
	m.transactionRepo = txn
	m.promoCodeRepo = promo
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository {
	return m.userRepo
}

func (m *MockUnitOfWork) BetRepository() BetRepository {
	return m.betRepo
}

func (m *MockUnitOfWork) TransactionRepository() TransactionRepository {
	return m.transactionRepo
}

func (m *MockUnitOfWork) PromoCodeRepository() PromoCodeRepository {
	return m.promoCodeRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return &m.publisher
}

// PublishedEvents returns the events captured by the unit of work's bus.
func (m *MockUnitOfWork) PublishedEvents() []events.Event {
	return m.publisher.Events
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
