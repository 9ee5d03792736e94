package scheduler

import (
	"context"

	"creekside_backend/internal/leads"
	"creekside_backend/platform/config"
	"creekside_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Worker consumes queued lead deliveries and pushes them through the
// recorder. The terminal outcome of every task is logged; nothing is
// dropped silently.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	rec    leads.Recorder
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, rec leads.Recorder, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		rec:    rec,
		log:    log,
	}

	mux.HandleFunc(TaskLeadDeliver, w.handleLeadDeliver)

	return w, nil
}

func (w *Worker) handleLeadDeliver(ctx context.Context, task *asynq.Task) error {
	lead, err := ParseLeadDeliverPayload(task)
	if err != nil {
		w.log.Error("lead task payload unparseable", "error", err)
		// Malformed payloads never become deliverable; drop instead of retrying.
		return nil
	}

	result, err := w.rec.Record(ctx, lead)
	if err != nil {
		w.log.Warn("queued lead delivery failed",
			"booking_ref", lead.BookingRef, "status", result.Status, "error", err)
		return err
	}

	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("lead delivery worker stopped", "error", err)
	}
}
