package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/chris/property-escrow/pkg/models"
	"github.com/wneessen/go-mail"
)

// Sender is the part of *mail.Client the EmailNotifier needs.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPConfig configures the SMTP client.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// NewSMTPClient builds a go-mail client with plain auth.
func NewSMTPClient(cfg SMTPConfig) (*mail.Client, error) {
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	c, err := mail.NewClient(
		cfg.Host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize smtp client: %w", err)
	}
	return c, nil
}

// EmailNotifier sends every notification as a plain-text email.
type EmailNotifier struct {
	sender        Sender
	from          string
	fromName      string
	operatorEmail string
}

// NewEmailNotifier creates an EmailNotifier.
func NewEmailNotifier(sender Sender, from, fromName, operatorEmail string) *EmailNotifier {
	return &EmailNotifier{sender: sender, from: from, fromName: fromName, operatorEmail: operatorEmail}
}

// Make sure we conform to the interface
var _ Notifier = (*EmailNotifier)(nil)

func (n *EmailNotifier) SendCode(ctx context.Context, msg CodeMessage) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour verification code for %q is %s.\nIt expires at %s.\n\nIf you did not request this code you can ignore this email.\n",
		msg.Name, msg.PropertyTitle, msg.Code, msg.ExpiresAt.UTC().Format("15:04 MST, 2 Jan 2006"),
	)
	return n.send(ctx, []string{msg.To}, "Your property purchase verification code", body)
}

func (n *EmailNotifier) SendStatusUpdate(ctx context.Context, msg StatusMessage) error {
	if len(msg.To) == 0 {
		return nil
	}
	subject := fmt.Sprintf("Transaction update: %s", humanStatus(msg.Status))
	body := fmt.Sprintf("The purchase of %q (transaction %s) is now %s.\n", msg.PropertyTitle, msg.TransactionID, humanStatus(msg.Status))
	return n.send(ctx, msg.To, subject, body)
}

func (n *EmailNotifier) AlertOperator(ctx context.Context, alert Alert) error {
	if n.operatorEmail == "" {
		return nil
	}
	subject := fmt.Sprintf("[escrow] %s on %s", alert.Kind, alert.TransactionID)
	return n.send(ctx, []string{n.operatorEmail}, subject, alert.Detail+"\n")
}

func (n *EmailNotifier) send(ctx context.Context, to []string, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(n.fromName, n.from); err != nil {
		return fmt.Errorf("failed to set From address: %w", err)
	}
	if err := msg.To(to...); err != nil {
		return fmt.Errorf("failed to set To address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := n.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func humanStatus(s models.TransactionStatus) string {
	return strings.ReplaceAll(string(s), "_", " ")
}
