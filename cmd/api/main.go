package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"creekside_backend/internal/checkout"
	"creekside_backend/internal/diagnostics"
	apphttp "creekside_backend/internal/http"
	"creekside_backend/internal/http/router"
	"creekside_backend/internal/leads"
	"creekside_backend/internal/quote"
	"creekside_backend/internal/rates"
	"creekside_backend/internal/scheduler"
	"creekside_backend/platform/config"
	"creekside_backend/platform/logger"
	"creekside_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	calc := rates.NewCalculator()
	quoteModule := quote.NewModule(calc, val)
	leadsModule := leads.NewModule(cfg, log, val)

	// Queued lead delivery is opt-in: without REDIS_URL, checkout deliveries
	// happen in-request and their outcome is reported in the response.
	queueClient, closeQueue := initQueueClient(cfg, log)
	if closeQueue != nil {
		defer closeQueue()
		leadsModule.UseQueue(queueClient)
	}

	checkoutModule := checkout.NewModule(cfg, leadsModule.Dispatcher(), log, val)
	diagnosticsModule := diagnostics.NewModule(cfg, leadsModule.Recorder(), log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Modules: []apphttp.Module{
			quoteModule,
			checkoutModule,
			leadsModule,
			diagnosticsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initQueueClient(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; lead delivery runs in-request")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize queue client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}
