package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// DefaultCallTimeout bounds a single provider call independently of any polling interval.
const DefaultCallTimeout = 10 * time.Second

// BreakerConfig configures the circuit breaker placed in front of a provider.
type BreakerConfig struct {
	Name             string
	ConsecutiveFails uint32
	OpenTimeout      time.Duration
	CallTimeout      time.Duration
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.ConsecutiveFails == 0 {
		c.ConsecutiveFails = 5
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = 30 * time.Second
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = DefaultCallTimeout
	}
	return c
}

type guard struct {
	cb      *gobreaker.CircuitBreaker
	timeout time.Duration
}

func newGuard(cfg BreakerConfig) *guard {
	cfg = cfg.withDefaults()

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFails
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("provider circuit breaker state changed", "provider", name, "from", from.String(), "to", to.String())
		},
		// Rejections are answers from a healthy provider and must not trip the breaker.
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, ErrGatewayUnavailable)
		},
	}

	return &guard{cb: gobreaker.NewCircuitBreaker(settings), timeout: cfg.CallTimeout}
}

func (g *guard) do(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
	result, err := g.cb.Execute(func() (any, error) {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		res, err := fn(callCtx)
		if err != nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, ErrGatewayUnavailable) {
			err = fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
		}
		return res, err
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s circuit open", ErrGatewayUnavailable, g.cb.Name())
	}
	return result, err
}

// GuardedEscrow wraps an EscrowProvider with a per-call timeout and a circuit breaker.
type GuardedEscrow struct {
	next  EscrowProvider
	guard *guard
}

// NewGuardedEscrow creates a GuardedEscrow.
func NewGuardedEscrow(next EscrowProvider, cfg BreakerConfig) *GuardedEscrow {
	if cfg.Name == "" {
		cfg.Name = "escrow"
	}
	return &GuardedEscrow{next: next, guard: newGuard(cfg)}
}

// Make sure we conform to the interface
var _ EscrowProvider = (*GuardedEscrow)(nil)

func (g *GuardedEscrow) CreateEscrowSession(ctx context.Context, req EscrowRequest) (*EscrowSession, error) {
	res, err := g.guard.do(ctx, func(ctx context.Context) (any, error) {
		return g.next.CreateEscrowSession(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return res.(*EscrowSession), nil
}

func (g *GuardedEscrow) GetEscrowStatus(ctx context.Context, escrowID string) (EscrowStatus, error) {
	res, err := g.guard.do(ctx, func(ctx context.Context) (any, error) {
		return g.next.GetEscrowStatus(ctx, escrowID)
	})
	if err != nil {
		return "", err
	}
	return res.(EscrowStatus), nil
}

func (g *GuardedEscrow) ReleaseEscrow(ctx context.Context, escrowID string, payout Payout) (string, error) {
	res, err := g.guard.do(ctx, func(ctx context.Context) (any, error) {
		return g.next.ReleaseEscrow(ctx, escrowID, payout)
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

func (g *GuardedEscrow) CancelEscrowSession(ctx context.Context, escrowID string) error {
	_, err := g.guard.do(ctx, func(ctx context.Context) (any, error) {
		return nil, g.next.CancelEscrowSession(ctx, escrowID)
	})
	return err
}

// GuardedGateway wraps a PaymentGateway with a per-call timeout and a circuit breaker.
type GuardedGateway struct {
	next  PaymentGateway
	guard *guard
}

// NewGuardedGateway creates a GuardedGateway.
func NewGuardedGateway(next PaymentGateway, cfg BreakerConfig) *GuardedGateway {
	if cfg.Name == "" {
		cfg.Name = "card-gateway"
	}
	return &GuardedGateway{next: next, guard: newGuard(cfg)}
}

// Make sure we conform to the interface
var _ PaymentGateway = (*GuardedGateway)(nil)

func (g *GuardedGateway) InitializePayment(ctx context.Context, req PaymentRequest) (*PaymentInit, error) {
	res, err := g.guard.do(ctx, func(ctx context.Context) (any, error) {
		return g.next.InitializePayment(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return res.(*PaymentInit), nil
}

func (g *GuardedGateway) VerifyPayment(ctx context.Context, reference string) (*PaymentResult, error) {
	res, err := g.guard.do(ctx, func(ctx context.Context) (any, error) {
		return g.next.VerifyPayment(ctx, reference)
	})
	if err != nil {
		return nil, err
	}
	return res.(*PaymentResult), nil
}
