package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nathanyu/accounts-service/internal/domain"
)

// NotificationSubject is the NATS subject transfer notifications are
// published on.
const NotificationSubject = "accounts.notifications"

// NATSNotifier publishes transfer notifications to NATS. Fire-and-forget:
// there is no ack and no delivery guarantee, which is all the transfer flow
// requires.
type NATSNotifier struct {
	conn *nats.Conn
}

// NewNATSNotifier connects to NATS and returns a notifier backed by the
// connection.
func NewNATSNotifier(url string) (*NATSNotifier, error) {
	opts := []nats.Option{
		nats.Name("accounts-service"),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(10),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				slog.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSNotifier{conn: conn}, nil
}

// Notify publishes the notification as a JSON envelope.
func (n *NATSNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	data, err := domain.SerializeNotification(notification)
	if err != nil {
		return fmt.Errorf("failed to serialize notification: %w", err)
	}

	if err := n.conn.Publish(NotificationSubject, data); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}

// Close drains and closes the NATS connection.
func (n *NATSNotifier) Close() {
	if n.conn != nil {
		n.conn.Drain()
		n.conn.Close()
	}
}
