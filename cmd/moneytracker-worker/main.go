package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"moneytracker/internal/amqp"
	"moneytracker/internal/backend"
	"moneytracker/internal/cli"
	"moneytracker/internal/config"
	applog "moneytracker/internal/log"
	"moneytracker/internal/worker"
)

func main() {
	cfg, logger := cli.LoadConfig((*config.Config).ValidateWorker)
	logger.Info("Starting moneytracker-worker", applog.FieldOperation, applog.OpStartup)

	ctx, stop := cli.SignalContext()
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err.Error())
		os.Exit(1)
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", applog.FieldError, err.Error(), applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer result.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err.Error())
		os.Exit(1)
	}
	defer amqpClient.Close()

	balances := worker.NewBalanceWorker(result.Backend, logger)
	if err := balances.Seed(ctx); err != nil {
		// The periodic reconcile retries the seed.
		logger.Error("Failed to seed balance", applog.FieldError, err.Error())
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.RunConsumer(gctx, balances.HandleTransactionCreated)
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.ReconcileInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if err := balances.Reconcile(gctx); err != nil {
					logger.Error("Periodic reconcile failed", applog.FieldError, err.Error())
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", applog.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully",
		applog.FieldOperation, applog.OpShutdown,
		applog.FieldBalance, balances.Balance().StringFixed(2))
}
