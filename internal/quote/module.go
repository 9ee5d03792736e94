package quote

import (
	apphttp "creekside_backend/internal/http"
	"creekside_backend/internal/rates"
	"creekside_backend/platform/validator"
)

// Module is the quote calculation domain module.
type Module struct {
	builder *Builder
	handler *Handler
}

// NewModule creates the quote module with all dependencies wired.
func NewModule(calc *rates.Calculator, val *validator.Validator) *Module {
	builder := NewBuilder(calc)
	return &Module{
		builder: builder,
		handler: NewHandler(builder, val),
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "quote"
}

// Builder returns the quote builder for other modules.
func (m *Module) Builder() *Builder {
	return m.builder
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/quote", m.handler.Calculate)
	// The embedded widget posts to the short path.
	ctx.Root.POST("/quote", m.handler.Calculate)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
