package main

import (
	"os"
	"time"

	"moneytracker/internal/amqp"
	"moneytracker/internal/backend"
	"moneytracker/internal/cli"
	"moneytracker/internal/config"
	apphttp "moneytracker/internal/http"
	applog "moneytracker/internal/log"
	"moneytracker/internal/services"
)

func main() {
	cfg, logger := cli.LoadConfig((*config.Config).Validate)

	ctx, stop := cli.SignalContext()
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err.Error())
		os.Exit(1)
	}

	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend",
			applog.FieldError, err.Error(),
			applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := result.Close(); err != nil {
			logger.Error("Backend cleanup failed", applog.FieldError, err.Error())
		}
	}()

	opts := []services.Option{
		services.WithTimeout(cfg.StoreTimeout),
		services.WithLogger(logger),
	}

	// AMQP is optional: without it transactions are stored but not announced.
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Warn("AMQP unavailable, continuing without transaction events", applog.FieldError, err.Error())
		} else {
			opts = append(opts, services.WithPublisher(amqpClient))
			logger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange)
		}
	}

	svc := services.NewTransactionService(result.Backend, opts...)
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("Service close failed", applog.FieldError, err.Error())
		}
	}()

	srv := apphttp.NewServer(":"+cfg.Port, svc, apphttp.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:             logger,
	})
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	logger.Info("Starting moneytracker API",
		applog.FieldOperation, applog.OpStartup,
		"port", cfg.Port,
		applog.FieldBackend, cfg.DataBackend)

	if err := cli.Serve(ctx, logger, "api", srv, 30*time.Second); err != nil {
		logger.Error("Server error", applog.FieldError, err.Error(), "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
