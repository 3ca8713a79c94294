package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"casino/events"
	"casino/models"

	log "github.com/sirupsen/logrus"
)

// ParseAdminCommand parses one whitespace-delimited admin command line into
// its structured form. Every way a line can be malformed — unknown verb,
// wrong argument count, non-integer number — yields ErrInvalidCommand.
func ParseAdminCommand(line string) (*models.AdminCommand, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrInvalidCommand)
	}

	switch models.AdminVerb(parts[0]) {
	case models.AdminVerbAdjustBalance:
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: adjust-balance takes target and amount", ErrInvalidCommand)
		}
		amount, err := parseCommandInt(parts[2])
		if err != nil {
			return nil, err
		}
		return &models.AdminCommand{
			Verb:   models.AdminVerbAdjustBalance,
			Target: parts[1],
			Amount: amount,
			// An explicit plus sign requests an unconditional credit;
			// everything else is clamped at a floor of zero.
			Unconditional: strings.HasPrefix(parts[2], "+"),
		}, nil

	case models.AdminVerbBan:
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: ban takes a target", ErrInvalidCommand)
		}
		return &models.AdminCommand{
			Verb:   models.AdminVerbBan,
			Target: parts[1],
		}, nil

	case models.AdminVerbMintBalanceCode:
		if len(parts) != 4 {
			return nil, fmt.Errorf("%w: mint-balance-code takes code, activations and amount", ErrInvalidCommand)
		}
		activations, err := parseCommandInt(parts[2])
		if err != nil {
			return nil, err
		}
		amount, err := parseCommandInt(parts[3])
		if err != nil {
			return nil, err
		}
		return &models.AdminCommand{
			Verb:        models.AdminVerbMintBalanceCode,
			Code:        parts[1],
			Activations: activations,
			CodeAmount:  amount,
		}, nil

	case models.AdminVerbMintLuckyCode:
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: mint-lucky-code takes code and activations", ErrInvalidCommand)
		}
		activations, err := parseCommandInt(parts[2])
		if err != nil {
			return nil, err
		}
		return &models.AdminCommand{
			Verb:        models.AdminVerbMintLuckyCode,
			Code:        parts[1],
			Activations: activations,
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown verb %q", ErrInvalidCommand, parts[0])
	}
}

func parseCommandInt(token string) (int64, error) {
	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidCommand, token)
	}
	return n, nil
}

// adminService implements the AdminService interface
type adminService struct {
	uowFactory UnitOfWorkFactory
	promo      PromoService
}

// NewAdminService creates a new admin service. Code minting is delegated to
// the promo service.
func NewAdminService(uowFactory UnitOfWorkFactory, promo PromoService) AdminService {
	return &adminService{
		uowFactory: uowFactory,
		promo:      promo,
	}
}

// ExecuteCommand parses and runs one admin command line.
func (s *adminService) ExecuteCommand(ctx context.Context, commandText string) error {
	cmd, err := ParseAdminCommand(commandText)
	if err != nil {
		return err
	}

	log.WithField("verb", cmd.Verb).Info("Executing admin command")

	switch cmd.Verb {
	case models.AdminVerbAdjustBalance:
		return s.adjustBalance(ctx, cmd)
	case models.AdminVerbBan:
		return s.ban(ctx, cmd.Target)
	case models.AdminVerbMintBalanceCode:
		return s.promo.CreateBalanceCode(ctx, cmd.Code, cmd.Activations, cmd.CodeAmount)
	case models.AdminVerbMintLuckyCode:
		return s.promo.CreateLuckyCode(ctx, cmd.Code, cmd.Activations)
	default:
		return fmt.Errorf("%w: unknown verb %q", ErrInvalidCommand, cmd.Verb)
	}
}

func (s *adminService) adjustBalance(ctx context.Context, cmd *models.AdminCommand) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	var err error
	if cmd.Unconditional {
		err = uow.UserRepository().AddBalance(ctx, cmd.Target, cmd.Amount)
	} else {
		err = uow.UserRepository().AddBalanceClamped(ctx, cmd.Target, cmd.Amount)
	}
	if err != nil {
		return fmt.Errorf("failed to adjust balance: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		Username: cmd.Target,
		Delta:    cmd.Amount,
		Reason:   "admin_adjust",
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *adminService) ban(ctx context.Context, target string) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Ban(ctx, target); err != nil {
		return fmt.Errorf("failed to ban user: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithField("username", target).Info("User banned")

	return nil
}
