package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chris/property-escrow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type fakeSender struct {
	sent []*mail.Msg
	err  error
}

func (f *fakeSender) DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error {
	f.sent = append(f.sent, messages...)
	return f.err
}

func render(t *testing.T, msg *mail.Msg) string {
	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestSendCode(t *testing.T) {
	sender := &fakeSender{}
	notifier := NewEmailNotifier(sender, "noreply@example.com", "Escrow", "ops@example.com")

	err := notifier.SendCode(context.Background(), CodeMessage{
		To:            "buyer@example.com",
		Name:          "Ada",
		TransactionID: "tx1",
		PropertyTitle: "Two bedroom flat",
		Code:          "482913",
		ExpiresAt:     time.Date(2026, 3, 1, 12, 10, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	to := sender.sent[0].GetToString()
	require.NoError(t, err)
	assert.Equal(t, []string{"<buyer@example.com>"}, to)
	assert.Contains(t, render(t, sender.sent[0]), "482913")
}

func TestSendStatusUpdate(t *testing.T) {
	t.Run("Both Counterparties", func(t *testing.T) {
		sender := &fakeSender{}
		notifier := NewEmailNotifier(sender, "noreply@example.com", "Escrow", "")

		err := notifier.SendStatusUpdate(context.Background(), StatusMessage{
			To:            []string{"buyer@example.com", "seller@example.com"},
			TransactionID: "tx1",
			PropertyTitle: "Two bedroom flat",
			Status:        models.AWAITING_DISBURSEMENT,
		})

		require.NoError(t, err)
		require.Len(t, sender.sent, 1)
		assert.Equal(t, []string{"Transaction update: awaiting disbursement"}, sender.sent[0].GetGenHeader(mail.HeaderSubject))
	})

	t.Run("No Recipients", func(t *testing.T) {
		sender := &fakeSender{}
		notifier := NewEmailNotifier(sender, "noreply@example.com", "Escrow", "")

		assert.NoError(t, notifier.SendStatusUpdate(context.Background(), StatusMessage{TransactionID: "tx1"}))
		assert.Empty(t, sender.sent)
	})
}

func TestAlertOperator(t *testing.T) {
	t.Run("Sends To Operator", func(t *testing.T) {
		sender := &fakeSender{}
		notifier := NewEmailNotifier(sender, "noreply@example.com", "Escrow", "ops@example.com")

		err := notifier.AlertOperator(context.Background(), Alert{Kind: AlertEscrowMismatch, TransactionID: "tx1", Detail: "stored cs_1, provider reported cs_2"})

		require.NoError(t, err)
		require.Len(t, sender.sent, 1)
		assert.Equal(t, []string{"[escrow] escrow_mismatch on tx1"}, sender.sent[0].GetGenHeader(mail.HeaderSubject))
	})

	t.Run("Send Failure", func(t *testing.T) {
		sender := &fakeSender{err: errors.New("dial tcp: connection refused")}
		notifier := NewEmailNotifier(sender, "noreply@example.com", "Escrow", "ops@example.com")

		err := notifier.AlertOperator(context.Background(), Alert{Kind: AlertReconciliationStalled, TransactionID: "tx1"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send email")
	})
}
