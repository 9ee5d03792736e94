// Package diagnostics exposes operational probes: configuration presence
// and an end-to-end webhook test. Neither endpoint reveals secret values.
package diagnostics

import (
	"time"

	"github.com/gin-gonic/gin"

	apphttp "creekside_backend/internal/http"
	"creekside_backend/internal/leads"
	"creekside_backend/platform/config"
	"creekside_backend/platform/httpkit"
	"creekside_backend/platform/logger"
)

// Config is the read-only view of configuration the probes report on.
type Config interface {
	config.SquareConfig
	config.SheetsConfig
	config.SchedulerConfig
}

// Module is the diagnostics module.
type Module struct {
	cfg Config
	rec leads.Recorder
	log *logger.Logger
}

func NewModule(cfg Config, rec leads.Recorder, log *logger.Logger) *Module {
	return &Module{cfg: cfg, rec: rec, log: log}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "diagnostics"
}

// EnvCheck handles GET /env-check. It reports which integrations are
// configured, as booleans only.
func (m *Module) EnvCheck(c *gin.Context) {
	httpkit.OK(c, gin.H{
		"ok": true,
		"env": gin.H{
			"squareConfigured": m.cfg.IsSquareConfigured(),
			"sheetsConfigured": m.cfg.IsSheetsConfigured(),
			"redisConfigured":  m.cfg.GetRedisURL() != "",
			"sheetsTransport":  m.cfg.GetSheetsTransport(),
			"leadsMode":        m.cfg.GetLeadsMode(),
		},
	})
}

// TestSheets handles GET /test-sheets. It sends one synthetic TEST lead
// through the real webhook path and reports the delivery result, so a
// deployment can be verified without a guest in the funnel.
func (m *Module) TestSheets(c *gin.Context) {
	lead := leads.BookingLead{
		BookingRef: leads.NewBookingRef(),
		CreatedAt:  leads.Timestamp(time.Now()),
		Source:     leads.SourceDiagnostic,
		EventType:  leads.EventTest,
		GuestName:  "Connectivity Test",
	}

	result, err := m.rec.Record(c.Request.Context(), lead)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{
		"ok":         true,
		"bookingRef": lead.BookingRef,
		"status":     result.Status,
	})
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Root.GET("/env-check", m.EnvCheck)
	ctx.Root.GET("/test-sheets", m.TestSheets)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
