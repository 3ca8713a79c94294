package service

import (
	"context"
	"fmt"

	"casino/models"
)

// transactionService implements the TransactionService interface
type transactionService struct {
	uowFactory   UnitOfWorkFactory
	historyLimit int
}

// NewTransactionService creates a new transaction log service
func NewTransactionService(uowFactory UnitOfWorkFactory, historyLimit int) TransactionService {
	return &transactionService{
		uowFactory:   uowFactory,
		historyLimit: historyLimit,
	}
}

// Append records a balance-affecting event for a user. The type label is
// free-form and supplied by the caller.
func (s *transactionService) Append(ctx context.Context, username, transactionType string, amount int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entry := &models.Transaction{
		Username: username,
		Type:     transactionType,
		Amount:   amount,
	}
	if err := uow.TransactionRepository().Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// History returns a user's most recent log entries, newest first.
func (s *transactionService) History(ctx context.Context, username string) ([]*models.Transaction, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.TransactionRepository().GetByUser(ctx, username, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return entries, nil
}
