// Package checkout wires the checkout orchestration module: payment link
// creation via Square plus ride-along lead delivery.
package checkout

import (
	"creekside_backend/internal/checkout/handler"
	"creekside_backend/internal/checkout/service"
	apphttp "creekside_backend/internal/http"
	"creekside_backend/internal/leads"
	"creekside_backend/internal/square"
	"creekside_backend/platform/config"
	"creekside_backend/platform/logger"
	"creekside_backend/platform/validator"
)

// Module is the checkout domain module.
type Module struct {
	square  *square.Client
	handler *handler.Handler
}

// NewModule creates the checkout module. The dispatcher decides whether the
// ride-along lead is delivered in-request or queued; the module is agnostic.
func NewModule(cfg config.SquareConfig, dispatcher leads.Dispatcher, log *logger.Logger, val *validator.Validator) *Module {
	client := square.NewClient(cfg, log)
	svc := service.New(client, dispatcher, log)
	return &Module{
		square:  client,
		handler: handler.NewHandler(svc, val),
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "checkout"
}

// Square returns the payment client for diagnostics.
func (m *Module) Square() *square.Client {
	return m.square
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Root.POST("/create-checkout", m.handler.Create)
	ctx.V1.POST("/checkout", m.handler.Create)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
