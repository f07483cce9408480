package domain

import (
	"github.com/shopspring/decimal"
)

// ViolationCode identifies a business rule a proposed transfer broke.
type ViolationCode string

const (
	ViolationAccountNotFound     ViolationCode = "ACCOUNT_NOT_FOUND"
	ViolationNegativeAmount      ViolationCode = "NEGATIVE_AMOUNT"
	ViolationSelfTransfer        ViolationCode = "SELF_TRANSFER"
	ViolationInsufficientBalance ViolationCode = "INSUFFICIENT_BALANCE"
)

// Violation is one reason a transfer was rejected. Message is the
// caller-facing text, preserved verbatim in the rejection response.
type Violation struct {
	Code    ViolationCode `json:"code"`
	Message string        `json:"message"`
}

// TransferSnapshot is the immutable view a transfer is validated against.
// It is built once both account locks are held, so every field reflects the
// same instant: resolved balances, presence markers for missing accounts,
// and whether both sides resolved to the same account identity.
type TransferSnapshot struct {
	FromID      string
	ToID        string
	FromFound   bool
	ToFound     bool
	FromBalance decimal.Decimal
	ToBalance   decimal.Decimal
	SameAccount bool
	Amount      decimal.Decimal
}
