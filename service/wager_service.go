package service

import (
	"context"
	"fmt"
	"sort"

	"casino/events"
	"casino/models"

	log "github.com/sirupsen/logrus"
)

// wagerService implements the WagerService interface
type wagerService struct {
	uowFactory UnitOfWorkFactory
}

// NewWagerService creates a new wager service
func NewWagerService(uowFactory UnitOfWorkFactory) WagerService {
	return &wagerService{
		uowFactory: uowFactory,
	}
}

// CreateBet opens a new active bet.
func (s *wagerService) CreateBet(ctx context.Context, creator string, amount int64) (*models.Bet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bet, err := uow.BetRepository().Create(ctx, creator, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to create bet: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return bet, nil
}

// ListActiveBets returns open bets, most recently created first.
func (s *wagerService) ListActiveBets(ctx context.Context) ([]*models.Bet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bets, err := uow.BetRepository().GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active bets: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return bets, nil
}

// AcceptBet settles a bet: the bet goes inactive, the winner is credited and
// the loser debited by the same amount, all in one transaction. The involved
// user rows are locked in sorted order so two concurrent settlements touching
// the same users cannot deadlock or interleave.
//
// Caller-supplied values are trusted: there is no check that the bet is still
// active, that winner and loser differ, or that amount matches the bet's
// recorded stake. The debit may drive the loser's balance negative.
func (s *wagerService) AcceptBet(ctx context.Context, betID int64, winner, loser string, amount int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	participants := []string{winner, loser}
	sort.Strings(participants)
	for i, username := range participants {
		if i > 0 && participants[i-1] == username {
			continue
		}
		if _, err := uow.UserRepository().GetByUsernameForUpdate(ctx, username); err != nil {
			return fmt.Errorf("failed to lock user %q: %w", username, err)
		}
	}

	if err := uow.BetRepository().Settle(ctx, betID); err != nil {
		return fmt.Errorf("failed to settle bet: %w", err)
	}
	if err := uow.UserRepository().AddBalance(ctx, winner, amount); err != nil {
		return fmt.Errorf("failed to credit winner: %w", err)
	}
	if err := uow.UserRepository().AddBalance(ctx, loser, -amount); err != nil {
		return fmt.Errorf("failed to debit loser: %w", err)
	}

	uow.EventBus().Publish(events.BetSettledEvent{
		BetID:  betID,
		Winner: winner,
		Loser:  loser,
		Amount: amount,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"betId":  betID,
		"winner": winner,
		"loser":  loser,
		"amount": amount,
	}).Info("Bet settled")

	return nil
}
