package leads

import (
	apphttp "creekside_backend/internal/http"
	"creekside_backend/platform/config"
	"creekside_backend/platform/logger"
	"creekside_backend/platform/validator"
)

// Module is the funnel-logging domain module.
type Module struct {
	recorder   *SheetsRecorder
	dispatcher Dispatcher
	handler    *Handler
	log        *logger.Logger
}

// NewModule creates the leads module. Dispatch defaults to in-request
// delivery; UseQueue switches to queued delivery when a queue is available.
func NewModule(cfg config.SheetsConfig, log *logger.Logger, val *validator.Validator) *Module {
	rec := NewSheetsRecorder(cfg, log)
	return &Module{
		recorder:   rec,
		dispatcher: NewSyncDispatcher(rec, log),
		handler:    NewHandler(rec, val),
		log:        log,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "leads"
}

// Recorder returns the webhook recorder for the worker and diagnostics.
func (m *Module) Recorder() Recorder {
	return m.recorder
}

// Dispatcher returns the configured lead dispatcher.
func (m *Module) Dispatcher() Dispatcher {
	return m.dispatcher
}

// UseQueue switches checkout ride-along deliveries to the queue.
// Pure tracking calls stay synchronous so their failures remain visible.
func (m *Module) UseQueue(enq Enqueuer) {
	m.dispatcher = NewQueueDispatcher(enq, m.log)
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Root.POST("/track-event", m.handler.Track)
	ctx.V1.POST("/track-event", m.handler.Track)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
