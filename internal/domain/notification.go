package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Notification is the payload delivered to an account holder after a
// completed transfer. Delivery is best-effort; the transfer has already
// committed by the time one of these exists.
type Notification struct {
	TransferID string          `json:"transfer_id"`
	AccountID  string          `json:"account_id"`
	Balance    decimal.Decimal `json:"balance"`
	Message    string          `json:"message"`
}

// NotificationEnvelope wraps a notification with metadata for the wire.
type NotificationEnvelope struct {
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// SerializeNotification converts a notification to JSON bytes with envelope.
func SerializeNotification(n Notification) ([]byte, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}

	envelope := NotificationEnvelope{
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	return json.Marshal(envelope)
}

// DeserializeNotification converts JSON bytes back to a Notification.
func DeserializeNotification(data []byte) (Notification, error) {
	var envelope NotificationEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return Notification{}, err
	}

	var n Notification
	if err := json.Unmarshal(envelope.Data, &n); err != nil {
		return Notification{}, err
	}

	return n, nil
}
