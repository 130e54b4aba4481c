// Package bootstrap wires the transaction service and its collaborators from configuration.
// The HTTP server and both lambdas build their dependencies through it.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/property-escrow/pkg/commission"
	"github.com/chris/property-escrow/pkg/config"
	"github.com/chris/property-escrow/pkg/lock"
	"github.com/chris/property-escrow/pkg/notify"
	"github.com/chris/property-escrow/pkg/providers"
	"github.com/chris/property-escrow/pkg/providers/paystack"
	"github.com/chris/property-escrow/pkg/providers/stripeescrow"
	"github.com/chris/property-escrow/pkg/reconciler"
	"github.com/chris/property-escrow/pkg/scheduler"
	"github.com/chris/property-escrow/pkg/storage"
	dydbstore "github.com/chris/property-escrow/pkg/storage/dynamodb"
	"github.com/chris/property-escrow/pkg/transactions"
)

const lockPrefix = "escrow:reconcile:"

// App holds the wired collaborators.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Store    storage.Storage
	Notifier notify.Notifier
	// Locker is nil when no Redis URL is configured.
	Locker  lock.Locker
	Service *transactions.Service

	closers []func() error
}

// Build loads the AWS configuration and constructs every collaborator enabled by cfg.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.DynamoDB.TransactionsTable, cfg.DynamoDB.PropertiesTable, cfg.DynamoDB.UsersTable)

	var sched scheduler.Scheduler
	if cfg.Disbursement.QueueURL != "" {
		sched = scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), cfg.Disbursement.QueueURL)
	} else {
		logger.Warn("SQS_QUEUE_URL not set, disbursements wait for the sweeper or an operator")
	}

	return assemble(cfg, logger, store, sched)
}

// assemble builds everything that does not need AWS credentials.
func assemble(cfg config.Config, logger *slog.Logger, store storage.Storage, sched scheduler.Scheduler) (*App, error) {
	app := &App{Config: cfg, Logger: logger, Store: store}

	calc, err := commission.NewCalculator(cfg.CommissionRate)
	if err != nil {
		return nil, err
	}

	breaker := providers.BreakerConfig{CallTimeout: cfg.Reconciler.CallTimeout}

	var escrow providers.EscrowProvider
	if cfg.Stripe.SecretKey != "" {
		breaker.Name = "stripe"
		escrow = providers.NewGuardedEscrow(stripeescrow.New(stripeescrow.Config{
			SecretKey:  cfg.Stripe.SecretKey,
			SuccessURL: cfg.Stripe.SuccessURL,
			CancelURL:  cfg.Stripe.CancelURL,
		}), breaker)
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set, escrow payments disabled")
	}

	var gateway providers.PaymentGateway
	if cfg.Paystack.SecretKey != "" {
		breaker.Name = "paystack"
		client := &http.Client{Timeout: cfg.Reconciler.CallTimeout}
		gateway = providers.NewGuardedGateway(paystack.New(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey, cfg.Paystack.CallbackURL, client), breaker)
	}

	app.Notifier, err = newNotifier(cfg.SMTP, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Redis.URL != "" {
		client, err := lock.NewClient(cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		app.Locker = lock.NewRedisLocker(client, lockPrefix, cfg.Redis.LockTTL)
		app.closers = append(app.closers, client.Close)
	}

	app.Service, err = transactions.NewService(transactions.Dependencies{
		Store:             store,
		Escrow:            escrow,
		Gateway:           gateway,
		Commission:        calc,
		Scheduler:         sched,
		Notifier:          app.Notifier,
		Logger:            logger,
		DisbursementDelay: cfg.Disbursement.Delay,
	})
	if err != nil {
		return nil, errors.Join(err, app.Close())
	}
	return app, nil
}

func newNotifier(cfg config.SMTPConfig, logger *slog.Logger) (notify.Notifier, error) {
	if cfg.Host == "" {
		logger.Warn("SMTP_HOST not set, notifications are logged only")
		return &notify.LogNotifier{Logger: logger}, nil
	}
	client, err := notify.NewSMTPClient(notify.SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, err
	}
	return notify.NewEmailNotifier(client, cfg.From, cfg.FromName, cfg.OperatorEmail), nil
}

// PollerConfig maps the reconciler settings onto the poller.
func (a *App) PollerConfig() reconciler.Config {
	r := a.Config.Reconciler
	return reconciler.Config{
		Interval:    r.Interval,
		MaxInterval: r.MaxInterval,
		MaxAttempts: r.MaxAttempts,
		CallTimeout: r.CallTimeout,
	}
}

// SweepConfig maps the reconciler settings onto the sweeper.
func (a *App) SweepConfig() reconciler.SweepConfig {
	r := a.Config.Reconciler
	return reconciler.SweepConfig{
		StuckAfter: r.StuckAfter,
		IdleTTL:    r.IdleTTL,
		PaymentTTL: r.PaymentTTL,
	}
}

// Close releases connections opened by Build.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}
