package service

import (
	"context"
	"fmt"

	"casino/events"
	"casino/models"

	log "github.com/sirupsen/logrus"
)

// promoService implements the PromoService interface
type promoService struct {
	uowFactory UnitOfWorkFactory
}

// NewPromoService creates a new promo service
func NewPromoService(uowFactory UnitOfWorkFactory) PromoService {
	return &promoService{
		uowFactory: uowFactory,
	}
}

// Redeem consumes one activation of a code for a user. The promo row is
// locked for the whole transaction, so of two concurrent redemptions of the
// same code the second one waits and then observes the first one's
// activation row; the (username, code) primary key backstops the check.
func (s *promoService) Redeem(ctx context.Context, username, code string) (*models.RedemptionResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	promo, err := uow.PromoCodeRepository().GetByCodeForUpdate(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up code: %w", err)
	}

	used, err := uow.PromoCodeRepository().HasActivation(ctx, username, code)
	if err != nil {
		return nil, fmt.Errorf("failed to check prior activation: %w", err)
	}
	if used {
		return nil, ErrAlreadyRedeemed
	}

	if promo == nil || promo.ActivationsLeft <= 0 {
		return nil, ErrInvalidOrExhausted
	}

	switch promo.Kind {
	case models.PromoCodeKindBalance:
		if err := uow.UserRepository().AddBalance(ctx, username, promo.Amount); err != nil {
			return nil, fmt.Errorf("failed to credit balance: %w", err)
		}
	case models.PromoCodeKindLucky:
		// Lucky codes grant the flag only; the amount is not applied.
		if err := uow.UserRepository().SetLuckyMode(ctx, username); err != nil {
			return nil, fmt.Errorf("failed to set lucky mode: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown promo code kind %q", promo.Kind)
	}

	if err := uow.PromoCodeRepository().DecrementActivations(ctx, code); err != nil {
		return nil, fmt.Errorf("failed to decrement activations: %w", err)
	}
	if err := uow.PromoCodeRepository().RecordActivation(ctx, username, code); err != nil {
		return nil, fmt.Errorf("failed to record activation: %w", err)
	}

	uow.EventBus().Publish(events.CodeRedeemedEvent{
		Username: username,
		Code:     code,
		Kind:     string(promo.Kind),
		Amount:   promo.Amount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"username": username,
		"code":     code,
		"kind":     promo.Kind,
	}).Info("Promo code redeemed")

	return &models.RedemptionResult{
		Kind:   promo.Kind,
		Amount: promo.Amount,
	}, nil
}

// CreateBalanceCode mints a code that credits amount on redemption.
func (s *promoService) CreateBalanceCode(ctx context.Context, code string, activations, amount int64) error {
	return s.createCode(ctx, &models.PromoCode{
		Code:            code,
		Kind:            models.PromoCodeKindBalance,
		Amount:          amount,
		ActivationsLeft: activations,
	})
}

// CreateLuckyCode mints a code that grants lucky mode on redemption.
func (s *promoService) CreateLuckyCode(ctx context.Context, code string, activations int64) error {
	return s.createCode(ctx, &models.PromoCode{
		Code:            code,
		Kind:            models.PromoCodeKindLucky,
		Amount:          0,
		ActivationsLeft: activations,
	})
}

func (s *promoService) createCode(ctx context.Context, promo *models.PromoCode) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.PromoCodeRepository().Create(ctx, promo); err != nil {
		return fmt.Errorf("failed to create code: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"code":        promo.Code,
		"kind":        promo.Kind,
		"activations": promo.ActivationsLeft,
	}).Info("Promo code minted")

	return nil
}
