package api

import (
	"context"

	"casino/models"

	"github.com/stretchr/testify/mock"
)

type mockAccountService struct {
	mock.Mock
}

func (m *mockAccountService) Register(ctx context.Context, username, password, ipAddress string) (*models.User, error) {
	args := m.Called(ctx, username, password, ipAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAccountService) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResult), args.Error(1)
}

func (m *mockAccountService) SetBalance(ctx context.Context, username string, balance int64) error {
	args := m.Called(ctx, username, balance)
	return args.Error(0)
}

func (m *mockAccountService) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

type mockWagerService struct {
	mock.Mock
}

func (m *mockWagerService) CreateBet(ctx context.Context, creator string, amount int64) (*models.Bet, error) {
	args := m.Called(ctx, creator, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *mockWagerService) ListActiveBets(ctx context.Context) ([]*models.Bet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bet), args.Error(1)
}

func (m *mockWagerService) AcceptBet(ctx context.Context, betID int64, winner, loser string, amount int64) error {
	args := m.Called(ctx, betID, winner, loser, amount)
	return args.Error(0)
}

type mockPromoService struct {
	mock.Mock
}

func (m *mockPromoService) Redeem(ctx context.Context, username, code string) (*models.RedemptionResult, error) {
	args := m.Called(ctx, username, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RedemptionResult), args.Error(1)
}

func (m *mockPromoService) CreateBalanceCode(ctx context.Context, code string, activations, amount int64) error {
	args := m.Called(ctx, code, activations, amount)
	return args.Error(0)
}

func (m *mockPromoService) CreateLuckyCode(ctx context.Context, code string, activations int64) error {
	args := m.Called(ctx, code, activations)
	return args.Error(0)
}

type mockAdminService struct {
	mock.Mock
}

func (m *mockAdminService) ExecuteCommand(ctx context.Context, commandText string) error {
	args := m.Called(ctx, commandText)
	return args.Error(0)
}

type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) Append(ctx context.Context, username, transactionType string, amount int64) error {
	args := m.Called(ctx, username, transactionType, amount)
	return args.Error(0)
}

func (m *mockTransactionService) History(ctx context.Context, username string) ([]*models.Transaction, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}
