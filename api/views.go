package api

import (
	"strconv"

	"casino/models"
)

// userView is the wire shape of one account in the list-users payload. The
// password field stays present for frontend compatibility.
type userView struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Balance   int64  `json:"balance"`
	Banned    bool   `json:"banned"`
	LuckyMode bool   `json:"luckyMode"`
}

// betView is the wire shape of one open bet. The id travels as a string.
type betView struct {
	ID      string `json:"id"`
	Creator string `json:"creator"`
	Amount  int64  `json:"amount"`
}

// transactionView is one entry of a user's history, newest first.
type transactionView struct {
	Type            string `json:"type"`
	Amount          int64  `json:"amount"`
	TimestampMillis int64  `json:"timestamp"`
}

// loginView is the payload of a successful login.
type loginView struct {
	Balance   int64 `json:"balance"`
	LuckyMode bool  `json:"luckyMode"`
}

// redemptionView is the payload of a successful code redemption.
type redemptionView struct {
	Kind   string `json:"kind"`
	Amount int64  `json:"amount"`
}

func toUserViews(users []*models.User) []userView {
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, userView{
			Username:  u.Username,
			Password:  u.Password,
			Balance:   u.Balance,
			Banned:    u.Banned,
			LuckyMode: u.LuckyMode,
		})
	}
	return views
}

func toBetViews(bets []*models.Bet) []betView {
	views := make([]betView, 0, len(bets))
	for _, b := range bets {
		views = append(views, betView{
			ID:      strconv.FormatInt(b.ID, 10),
			Creator: b.Creator,
			Amount:  b.Amount,
		})
	}
	return views
}

func toTransactionViews(entries []*models.Transaction) []transactionView {
	views := make([]transactionView, 0, len(entries))
	for _, e := range entries {
		views = append(views, transactionView{
			Type:            e.Type,
			Amount:          e.Amount,
			TimestampMillis: e.CreatedAt.UnixMilli(),
		})
	}
	return views
}
