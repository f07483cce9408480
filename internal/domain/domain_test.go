package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferRejectedError_JoinsMessages(t *testing.T) {
	err := &TransferRejectedError{Violations: []Violation{
		{Code: ViolationAccountNotFound, Message: "No account with id Id-A found"},
		{Code: ViolationSelfTransfer, Message: "Self transfer is not allowed"},
	}}

	assert.Equal(t, "No account with id Id-A found, Self transfer is not allowed", err.Error())
	assert.True(t, err.Has(ViolationSelfTransfer))
	assert.False(t, err.Has(ViolationNegativeAmount))
}

func TestAccountSnapshot_String(t *testing.T) {
	snapshot := AccountSnapshot{ID: "Id-123", Balance: decimal.RequireFromString("123.45")}
	assert.Equal(t, "Account(id=Id-123, balance=123.45)", snapshot.String())
}

func TestAccountSnapshot_ConsistentUnderLock(t *testing.T) {
	account := NewAccount("Id-123", decimal.NewFromInt(100))

	account.Lock()
	account.SetBalance(account.Balance().Sub(decimal.NewFromInt(40)))
	account.Unlock()

	snapshot := account.Snapshot()
	assert.Equal(t, "Id-123", snapshot.ID)
	assert.True(t, snapshot.Balance.Equal(decimal.NewFromInt(60)))
}

func TestNotificationEnvelopeRoundTrip(t *testing.T) {
	original := Notification{
		TransferID: "t-1",
		AccountID:  "Id-123",
		Balance:    decimal.RequireFromString("123.45"),
		Message:    "Transfer from account Account(id=Id-A, balance=0), quantity: 123.45",
	}

	data, err := SerializeNotification(original)
	require.NoError(t, err)

	decoded, err := DeserializeNotification(data)
	require.NoError(t, err)

	assert.Equal(t, original.TransferID, decoded.TransferID)
	assert.Equal(t, original.AccountID, decoded.AccountID)
	assert.Equal(t, original.Message, decoded.Message)
	assert.True(t, decoded.Balance.Equal(original.Balance))
}
