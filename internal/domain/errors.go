package domain

import (
	"fmt"
	"strings"
)

// DuplicateAccountError is returned when creating an account whose id is
// already taken. The store is left unchanged.
type DuplicateAccountError struct {
	ID string
}

func (e *DuplicateAccountError) Error() string {
	return fmt.Sprintf("Account id %s already exists!", e.ID)
}

// AccountNotFoundError is returned by lookups for ids that were never
// created. Inside a transfer, absence is reported as a validation violation
// instead so both missing accounts surface in one response.
type AccountNotFoundError struct {
	ID string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("No account with id %s found", e.ID)
}

// TransferRejectedError aggregates every violation the validator found.
// No balance was changed.
type TransferRejectedError struct {
	Violations []Violation
}

func (e *TransferRejectedError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return strings.Join(msgs, ", ")
}

// Has reports whether the rejection carries the given violation code.
func (e *TransferRejectedError) Has(code ViolationCode) bool {
	for _, v := range e.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}
