package notify

import (
	"context"
	"log/slog"
)

// LogNotifier writes notifications to the structured log instead of delivering them.
// It is used when no SMTP host is configured.
type LogNotifier struct {
	Logger *slog.Logger
}

// Make sure we conform to the interface
var _ Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) logger() *slog.Logger {
	if n.Logger == nil {
		return slog.Default()
	}
	return n.Logger
}

func (n *LogNotifier) SendCode(ctx context.Context, msg CodeMessage) error {
	n.logger().InfoContext(ctx, "verification code issued", "to", msg.To, "transaction_id", msg.TransactionID, "expires_at", msg.ExpiresAt)
	return nil
}

func (n *LogNotifier) SendStatusUpdate(ctx context.Context, msg StatusMessage) error {
	n.logger().InfoContext(ctx, "transaction status update", "to", msg.To, "transaction_id", msg.TransactionID, "status", msg.Status)
	return nil
}

func (n *LogNotifier) AlertOperator(ctx context.Context, alert Alert) error {
	n.logger().ErrorContext(ctx, "operator alert", "kind", alert.Kind, "transaction_id", alert.TransactionID, "detail", alert.Detail)
	return nil
}
