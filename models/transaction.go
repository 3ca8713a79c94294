package models

import "time"

// Transaction is one append-only entry in the per-user transaction log.
// Entries are never mutated or deleted. The type label is free-form and
// supplied by the caller; the constants below cover the labels this server
// writes itself.
type Transaction struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Type      string    `db:"type"`
	Amount    int64     `db:"amount"`
	CreatedAt time.Time `db:"created_at"`
}

const (
	TransactionTypeInitial    = "initial"
	TransactionTypeBetWin     = "bet_win"
	TransactionTypeBetLoss    = "bet_loss"
	TransactionTypePromoCredit = "promo_credit"
	TransactionTypeAdminAdjust = "admin_adjust"
)
