package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"creekside_backend/internal/leads"
	"creekside_backend/internal/scheduler"
	"creekside_backend/platform/config"
	"creekside_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting lead delivery worker", "env", cfg.Env, "queue", cfg.AsynqQueueName)

	if cfg.RedisURL == "" {
		panic("REDIS_URL is required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := leads.NewSheetsRecorder(cfg, log)

	worker, err := scheduler.NewWorker(cfg, recorder, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	worker.Run(ctx)
}
