package models

import "time"

// PromoCodeKind distinguishes what redeeming a code grants.
type PromoCodeKind string

const (
	// PromoCodeKindBalance credits Amount to the redeemer's balance.
	PromoCodeKindBalance PromoCodeKind = "balance"
	// PromoCodeKindLucky sets the redeemer's lucky-mode flag; Amount is unused.
	PromoCodeKindLucky PromoCodeKind = "lucky"
)

// PromoCode is a finite-use token redeemable at most once per user.
// ActivationsLeft only ever decreases.
type PromoCode struct {
	Code            string        `db:"code"`
	Kind            PromoCodeKind `db:"kind"`
	Amount          int64         `db:"amount"`
	ActivationsLeft int64         `db:"activations_left"`
	CreatedAt       time.Time     `db:"created_at"`
}

// CodeActivation records that a user has redeemed a code. The (username, code)
// primary key is the sole proof of prior redemption: once a row exists, no
// second effect may ever be applied for that pair.
type CodeActivation struct {
	Username  string    `db:"username"`
	Code      string    `db:"code"`
	CreatedAt time.Time `db:"created_at"`
}

// RedemptionResult is returned to the user after a successful redemption.
type RedemptionResult struct {
	Kind   PromoCodeKind
	Amount int64
}
