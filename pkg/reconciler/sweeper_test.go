package reconciler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/chris/property-escrow/pkg/models"
	"github.com/chris/property-escrow/pkg/providers"
	"github.com/chris/property-escrow/pkg/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type resumed struct {
	mu  sync.Mutex
	ids []string
}

func (r *resumed) resume(ctx context.Context, txID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, txID)
}

func TestSweep(t *testing.T) {
	h := newHarness(t)
	now := time.Now().UTC()
	ago := func(d time.Duration) time.Time { return now.Add(-d) }

	h.seed(t, models.Transaction{Id: "stuck", BuyerId: "b1", Status: models.PAYMENT_INITIATED, EscrowId: "cs_1", UpdatedAt: ago(time.Hour)})
	h.seed(t, models.Transaction{Id: "fresh-payment", BuyerId: "b2", Status: models.PAYMENT_INITIATED, EscrowId: "cs_2", UpdatedAt: ago(time.Minute)})
	h.seed(t, models.Transaction{
		Id: "payout", BuyerId: "b3", Status: models.AWAITING_DISBURSEMENT, EscrowId: "cs_3", PaymentMethod: models.PaymentMethodEscrow,
		UpdatedAt:      ago(time.Hour),
		PayoutSnapshot: &models.PayoutSnapshot{Commission: 2000, NetAmount: 48000, ScheduledAt: ago(time.Hour)},
	})
	h.seed(t, models.Transaction{Id: "idle-code", BuyerId: "b4", Status: models.AWAITING_CODE, UpdatedAt: ago(25 * time.Hour)})
	h.seed(t, models.Transaction{Id: "recent-verified", BuyerId: "b5", Status: models.VERIFIED, UpdatedAt: ago(time.Minute)})
	h.seed(t, models.Transaction{Id: "paid-late", BuyerId: "b6", Status: models.PAYMENT_INITIATED, EscrowId: "cs_6", UpdatedAt: ago(80 * time.Hour)})

	h.scheduler.On("ScheduleDisbursement", mock.Anything, mock.MatchedBy(func(req scheduler.DisbursementRequest) bool {
		return req.TransactionID == "payout" && req.NetAmount == 48000
	}), mock.Anything).Return(nil).Once()
	h.escrow.On("GetEscrowStatus", mock.Anything, "cs_6").Return(providers.EscrowFunded, nil).Once()

	r := &resumed{}
	s := NewSweeper(h.store, h.svc, r.resume, nil, SweepConfig{})
	s.now = func() time.Time { return now }

	res, err := s.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SweepResult{Resumed: 2, Rescheduled: 1, Expired: 1}, res)
	// paid-late is resumed by the stuck scan and again after its expiry was refused.
	assert.ElementsMatch(t, []string{"paid-late", "stuck", "paid-late"}, r.ids)

	assert.Equal(t, models.EXPIRED, h.status(t, "idle-code"))
	assert.Equal(t, models.VERIFIED, h.status(t, "recent-verified"))
	assert.Equal(t, models.PAYMENT_INITIATED, h.status(t, "paid-late"))
	assert.Equal(t, models.PAYMENT_INITIATED, h.status(t, "fresh-payment"))
}

func TestExpireIdleClosesUnpaidCheckout(t *testing.T) {
	h := newHarness(t)
	now := time.Now().UTC()
	h.seed(t, models.Transaction{Id: "abandoned", Status: models.PAYMENT_INITIATED, EscrowId: "cs_1", UpdatedAt: now.Add(-100 * time.Hour)})

	h.escrow.On("GetEscrowStatus", mock.Anything, "cs_1").Return(providers.EscrowPending, nil).Once()
	h.escrow.On("CancelEscrowSession", mock.Anything, "cs_1").Return(nil).Once()

	r := &resumed{}
	s := NewSweeper(h.store, h.svc, r.resume, nil, SweepConfig{})
	s.now = func() time.Time { return now }

	n, err := s.ExpireIdle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, r.ids)
	assert.Equal(t, models.EXPIRED, h.status(t, "abandoned"))
}

func TestRescheduleSkipsNotYetDue(t *testing.T) {
	h := newHarness(t)
	now := time.Now().UTC()
	h.seed(t, models.Transaction{
		Id: "cooling-off", Status: models.AWAITING_DISBURSEMENT, EscrowId: "cs_1",
		UpdatedAt:      now.Add(-time.Hour),
		PayoutSnapshot: &models.PayoutSnapshot{Commission: 2000, NetAmount: 48000, ScheduledAt: now.Add(23 * time.Hour)},
	})

	s := NewSweeper(h.store, h.svc, func(context.Context, string) {}, nil, SweepConfig{})
	s.now = func() time.Time { return now }

	n, err := s.RescheduleDisbursements(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSweepSkipsFrozen(t *testing.T) {
	h := newHarness(t)
	now := time.Now().UTC()
	h.seed(t, models.Transaction{Id: "frozen-payment", Status: models.PAYMENT_INITIATED, EscrowId: "cs_1", Frozen: true, UpdatedAt: now.Add(-time.Hour)})
	h.seed(t, models.Transaction{
		Id: "frozen-payout", BuyerId: "b2", Status: models.AWAITING_DISBURSEMENT, EscrowId: "cs_2", Frozen: true,
		UpdatedAt:      now.Add(-time.Hour),
		PayoutSnapshot: &models.PayoutSnapshot{Commission: 2000, NetAmount: 48000, ScheduledAt: now.Add(-time.Hour)},
	})

	r := &resumed{}
	s := NewSweeper(h.store, h.svc, r.resume, nil, SweepConfig{})
	s.now = func() time.Time { return now }

	resumedCount, err := s.ResumeStuck(context.Background(), now.Add(-s.cfg.StuckAfter))
	require.NoError(t, err)
	assert.Zero(t, resumedCount)
	assert.Empty(t, r.ids)

	rescheduled, err := s.RescheduleDisbursements(context.Background())
	require.NoError(t, err)
	assert.Zero(t, rescheduled)
}
