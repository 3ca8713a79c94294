package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"casino/api"
	"casino/config"
	"casino/database"
	"casino/events"
	"casino/repository"
	"casino/service"

	logrus "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting casino ledger server...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	log.Println("Initializing event bus...")
	eventBus := events.NewBus()
	registerEventLogging(eventBus)
	log.Println("Event bus initialized successfully")

	// Initialize unit of work factory
	log.Println("Initializing unit of work factory...")
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	log.Println("Unit of work factory initialized successfully")

	// Initialize services
	log.Println("Initializing services...")
	accountService := service.NewAccountService(uowFactory, service.PlaintextComparer{}, cfg.StartingBalance, cfg.MaxAccountsPerIP)
	wagerService := service.NewWagerService(uowFactory)
	promoService := service.NewPromoService(uowFactory)
	adminService := service.NewAdminService(uowFactory, promoService)
	transactionService := service.NewTransactionService(uowFactory, cfg.HistoryLimit)
	log.Println("Services initialized successfully")

	// Initialize HTTP server
	handler := api.NewHandler(accountService, wagerService, promoService, adminService, transactionService)
	server := api.NewServer(cfg.ListenAddr, handler)

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s in %s mode...", cfg.ListenAddr, cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for context cancellation or a server failure
	select {
	case err := <-serverErr:
		db.Close()
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	// Cleanup resources
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	// Close database connection
	log.Println("Closing database connection...")
	db.Close()

	log.Println("Shutdown completed")

	return nil
}

// registerEventLogging attaches the audit log subscribers to the bus.
func registerEventLogging(bus *events.Bus) {
	bus.Subscribe(events.EventTypeUserCreated, func(ctx context.Context, event events.Event) {
		e := event.(events.UserCreatedEvent)
		logrus.WithFields(logrus.Fields{
			"username":  e.Username,
			"ipAddress": e.IPAddress,
			"balance":   e.InitialBalance,
		}).Info("User created")
	})

	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		e := event.(events.BalanceChangeEvent)
		fields := logrus.Fields{
			"username": e.Username,
			"delta":    e.Delta,
			"reason":   e.Reason,
		}
		if e.NewBalance != nil {
			fields["newBalance"] = *e.NewBalance
		}
		logrus.WithFields(fields).Info("Balance changed")
	})

	bus.Subscribe(events.EventTypeBetSettled, func(ctx context.Context, event events.Event) {
		e := event.(events.BetSettledEvent)
		logrus.WithFields(logrus.Fields{
			"betId":  e.BetID,
			"winner": e.Winner,
			"loser":  e.Loser,
			"amount": e.Amount,
		}).Info("Bet settled")
	})

	bus.Subscribe(events.EventTypeCodeRedeemed, func(ctx context.Context, event events.Event) {
		e := event.(events.CodeRedeemedEvent)
		logrus.WithFields(logrus.Fields{
			"username": e.Username,
			"code":     e.Code,
			"kind":     e.Kind,
		}).Info("Code redeemed")
	})
}
