package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chris/property-escrow/pkg/bootstrap"
	"github.com/chris/property-escrow/pkg/reconciler"
	"github.com/chris/property-escrow/pkg/storage/memory"
	"github.com/chris/property-escrow/pkg/transactions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	store := memory.New()
	svc, err := transactions.NewService(transactions.Dependencies{Store: store})
	require.NoError(t, err)
	return &bootstrap.App{Store: store, Service: svc, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestRouter(t *testing.T) {
	app := newTestApp(t)
	router := newRouter(app, app.Logger)

	t.Run("Health", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	})

	t.Run("Metrics", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "escrow_active_pollers")
	})

	t.Run("Api Mounted", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/transactions/missing", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "not_found")
	})

	t.Run("Admin Disabled Without Token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/transactions/tx1/override", nil))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestSweepScheduler(t *testing.T) {
	app := newTestApp(t)
	sweeper := reconciler.NewSweeper(app.Store, app.Service, func(context.Context, string) {}, app.Logger, reconciler.SweepConfig{})

	sched, err := newSweepScheduler(context.Background(), sweeper, time.Hour, app.Logger)
	require.NoError(t, err)
	require.Len(t, sched.Jobs(), 1)
	assert.Equal(t, "sweep", sched.Jobs()[0].Name())
	assert.NoError(t, sched.Shutdown())
}
