package models

// AdminVerb identifies which privileged operation an admin command requests.
type AdminVerb string

const (
	AdminVerbAdjustBalance   AdminVerb = "adjust-balance"
	AdminVerbBan             AdminVerb = "ban"
	AdminVerbMintBalanceCode AdminVerb = "mint-balance-code"
	AdminVerbMintLuckyCode   AdminVerb = "mint-lucky-code"
)

// AdminCommand is the parsed form of one admin command line. Only the fields
// relevant to the verb are populated.
type AdminCommand struct {
	Verb AdminVerb

	// adjust-balance / ban
	Target string
	// adjust-balance: the signed delta. Unconditional marks an explicit
	// leading plus sign, which credits without the zero floor.
	Amount        int64
	Unconditional bool

	// mint-balance-code / mint-lucky-code
	Code        string
	Activations int64
	// mint-balance-code only
	CodeAmount int64
}
