package notify

import (
	"context"
	"log/slog"

	"github.com/nathanyu/accounts-service/internal/domain"
)

// LogNotifier writes notifications to the structured log. Used as the
// fallback sink when NATS is unreachable so the service still runs.
type LogNotifier struct{}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify logs the notification.
func (n *LogNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	slog.InfoContext(ctx, "transfer notification",
		"transfer_id", notification.TransferID,
		"account", notification.AccountID,
		"message", notification.Message,
	)
	return nil
}
