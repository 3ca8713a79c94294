package models

import "time"

// Bet represents a peer-to-peer stake proposed by a creator. A bet starts
// active and is settled exactly once when another player accepts it.
type Bet struct {
	ID        int64     `db:"id"`
	Creator   string    `db:"creator"`
	Amount    int64     `db:"amount"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

// BetSettlement captures the outcome of accepting a bet.
type BetSettlement struct {
	BetID  int64
	Winner string
	Loser  string
	Amount int64
}
