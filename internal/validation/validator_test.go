package validation

import (
	"testing"

	"github.com/nathanyu/accounts-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidate_MissingFromAccount(t *testing.T) {
	v := NewTransferValidator()

	violations := v.Validate(domain.TransferSnapshot{
		FromID:    "IdFrom-1",
		ToID:      "IdTo-1",
		ToFound:   true,
		ToBalance: decimal.Zero,
		Amount:    decimal.NewFromInt(10),
	})

	assert.Len(t, violations, 1)
	assert.Equal(t, domain.ViolationAccountNotFound, violations[0].Code)
	assert.Equal(t, "No account with id IdFrom-1 found", violations[0].Message)
}

func TestValidate_MissingToAccount(t *testing.T) {
	v := NewTransferValidator()

	violations := v.Validate(domain.TransferSnapshot{
		FromID:      "IdFrom-1",
		ToID:        "IdTo-1",
		FromFound:   true,
		FromBalance: decimal.NewFromInt(10),
		Amount:      decimal.NewFromInt(10),
	})

	assert.Len(t, violations, 1)
	assert.Equal(t, domain.ViolationAccountNotFound, violations[0].Code)
	assert.Equal(t, "No account with id IdTo-1 found", violations[0].Message)
}

func TestValidate_SelfTransfer(t *testing.T) {
	v := NewTransferValidator()

	violations := v.Validate(domain.TransferSnapshot{
		FromID:      "Id-1",
		ToID:        "Id-1",
		FromFound:   true,
		ToFound:     true,
		FromBalance: decimal.NewFromInt(10),
		ToBalance:   decimal.NewFromInt(10),
		SameAccount: true,
		Amount:      decimal.NewFromInt(10),
	})

	assert.Len(t, violations, 1)
	assert.Equal(t, domain.ViolationSelfTransfer, violations[0].Code)
	assert.Equal(t, "Self transfer is not allowed", violations[0].Message)
}

func TestValidate_InsufficientBalance(t *testing.T) {
	v := NewTransferValidator()

	violations := v.Validate(domain.TransferSnapshot{
		FromID:    "IdFrom-1",
		ToID:      "IdTo-1",
		FromFound: true,
		ToFound:   true,
		Amount:    decimal.NewFromInt(10),
	})

	assert.Len(t, violations, 1)
	assert.Equal(t, domain.ViolationInsufficientBalance, violations[0].Code)
	assert.Equal(t, "Insufficient balance to perform transfer", violations[0].Message)
}

func TestValidate_NegativeAmount(t *testing.T) {
	v := NewTransferValidator()

	violations := v.Validate(domain.TransferSnapshot{
		FromID:      "IdFrom-1",
		ToID:        "IdTo-1",
		FromFound:   true,
		ToFound:     true,
		FromBalance: decimal.NewFromInt(10),
		Amount:      decimal.NewFromInt(-1),
	})

	assert.Len(t, violations, 1)
	assert.Equal(t, domain.ViolationNegativeAmount, violations[0].Code)
	assert.Equal(t, "Amount to transfer must be positive", violations[0].Message)
}

func TestValidate_ValidTransfer(t *testing.T) {
	v := NewTransferValidator()

	violations := v.Validate(domain.TransferSnapshot{
		FromID:      "IdFrom-1",
		ToID:        "IdTo-1",
		FromFound:   true,
		ToFound:     true,
		FromBalance: decimal.NewFromInt(10),
		Amount:      decimal.NewFromInt(10),
	})

	assert.Empty(t, violations)
}

func TestValidate_ZeroAmountIsLegalNoOp(t *testing.T) {
	v := NewTransferValidator()

	violations := v.Validate(domain.TransferSnapshot{
		FromID:    "IdFrom-1",
		ToID:      "IdTo-1",
		FromFound: true,
		ToFound:   true,
		Amount:    decimal.Zero,
	})

	assert.Empty(t, violations)
}

// Every rule runs; the violation list keeps a fixed order regardless of how
// many rules fire at once. Two missing accounts also count as the same
// identity, so the self-transfer rule fires too.
func TestValidate_ReportsAllViolationsInOrder(t *testing.T) {
	v := NewTransferValidator()

	violations := v.Validate(domain.TransferSnapshot{
		FromID:      "IdFrom-1",
		ToID:        "IdTo-1",
		SameAccount: true,
		Amount:      decimal.NewFromInt(-5),
	})

	codes := make([]domain.ViolationCode, len(violations))
	for i, violation := range violations {
		codes[i] = violation.Code
	}

	assert.Equal(t, []domain.ViolationCode{
		domain.ViolationAccountNotFound,
		domain.ViolationAccountNotFound,
		domain.ViolationNegativeAmount,
		domain.ViolationSelfTransfer,
	}, codes)
	assert.Equal(t, "No account with id IdFrom-1 found", violations[0].Message)
	assert.Equal(t, "No account with id IdTo-1 found", violations[1].Message)
}

// The insufficient-balance rule only applies when the from account exists.
func TestValidate_SkipsBalanceCheckWhenFromMissing(t *testing.T) {
	v := NewTransferValidator()

	violations := v.Validate(domain.TransferSnapshot{
		FromID:    "IdFrom-1",
		ToID:      "IdTo-1",
		ToFound:   true,
		ToBalance: decimal.Zero,
		Amount:    decimal.NewFromInt(100),
	})

	for _, violation := range violations {
		assert.NotEqual(t, domain.ViolationInsufficientBalance, violation.Code)
	}
}
