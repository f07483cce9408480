package validation

import (
	"fmt"

	"github.com/nathanyu/accounts-service/internal/domain"
)

const (
	msgAccountNotFound     = "No account with id %s found"
	msgNegativeAmount      = "Amount to transfer must be positive"
	msgSelfTransfer        = "Self transfer is not allowed"
	msgInsufficientBalance = "Insufficient balance to perform transfer"
)

// Validator evaluates a transfer snapshot against the business rules.
// Implementations must be pure: no side effects, same snapshot in, same
// violations out.
type Validator interface {
	Validate(snapshot domain.TransferSnapshot) []domain.Violation
}

// TransferValidator is the production rule set. Every rule runs (no
// short-circuit) so the caller gets the full list of reasons, in a fixed
// order for reproducible responses:
//
//  1. from account missing
//  2. to account missing
//  3. amount negative (zero is a legal no-op)
//  4. from and to are the same account identity
//  5. insufficient balance, only checked when the from account exists
type TransferValidator struct{}

// NewTransferValidator creates the production validator.
func NewTransferValidator() *TransferValidator {
	return &TransferValidator{}
}

// Validate returns the ordered violation list; empty means the transfer may
// proceed.
func (v *TransferValidator) Validate(snapshot domain.TransferSnapshot) []domain.Violation {
	var violations []domain.Violation

	if !snapshot.FromFound {
		violations = append(violations, domain.Violation{
			Code:    domain.ViolationAccountNotFound,
			Message: fmt.Sprintf(msgAccountNotFound, snapshot.FromID),
		})
	}
	if !snapshot.ToFound {
		violations = append(violations, domain.Violation{
			Code:    domain.ViolationAccountNotFound,
			Message: fmt.Sprintf(msgAccountNotFound, snapshot.ToID),
		})
	}

	if snapshot.Amount.IsNegative() {
		violations = append(violations, domain.Violation{
			Code:    domain.ViolationNegativeAmount,
			Message: msgNegativeAmount,
		})
	}

	if snapshot.SameAccount {
		violations = append(violations, domain.Violation{
			Code:    domain.ViolationSelfTransfer,
			Message: msgSelfTransfer,
		})
	}

	if snapshot.FromFound && snapshot.FromBalance.LessThan(snapshot.Amount) {
		violations = append(violations, domain.Violation{
			Code:    domain.ViolationInsufficientBalance,
			Message: msgInsufficientBalance,
		})
	}

	return violations
}
