// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "escrow_transitions_total",
		Help: "Applied transaction state transitions.",
	}, []string{"from", "to"})

	RejectedTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "escrow_transitions_rejected_total",
		Help: "Transition requests rejected because the transaction was in the wrong state.",
	}, []string{"operation"})

	CodeVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "escrow_code_verifications_total",
		Help: "Verification code attempts by outcome.",
	}, []string{"outcome"})

	ProviderCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "escrow_provider_calls_total",
		Help: "Provider calls made by the reconciliation poller by outcome.",
	}, []string{"provider", "outcome"})

	ReconcileDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "escrow_reconcile_duration_seconds",
		Help:    "Duration of a single reconciliation pass.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	ActivePollers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "escrow_active_pollers",
		Help: "Transactions currently watched by the in-process poller.",
	})

	StalledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "escrow_reconciliation_stalled_total",
		Help: "Reconciliation episodes that exhausted their retry budget.",
	})

	FrozenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "escrow_transactions_frozen_total",
		Help: "Transactions frozen after a provider event named another escrow.",
	})
)
