package main

import (
	"os"
	"time"

	"moneytracker/internal/cli"
	"moneytracker/internal/client"
	"moneytracker/internal/config"
	applog "moneytracker/internal/log"
	"moneytracker/internal/ui"
)

func main() {
	cfg, logger := cli.LoadConfig((*config.Config).ValidateWeb)

	ctx, stop := cli.SignalContext()
	defer stop()

	api := client.New(cfg.APIURL, cfg.APITimeout, client.WithLogger(logger))
	srv := ui.NewServer(":"+cfg.WebPort, api, ui.Options{Logger: logger})
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	logger.Info("Starting moneytracker web UI",
		applog.FieldOperation, applog.OpStartup,
		"port", cfg.WebPort,
		"api_url", cfg.APIURL)

	if err := cli.Serve(ctx, logger, "web", srv, 30*time.Second); err != nil {
		logger.Error("Server error", applog.FieldError, err.Error(), "port", cfg.WebPort)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
