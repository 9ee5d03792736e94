package diagnostics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apphttp "creekside_backend/internal/http"
	"creekside_backend/internal/leads"
	"creekside_backend/platform/apperr"
	"creekside_backend/platform/config"
	"creekside_backend/platform/logger"
)

type fakeRecorder struct {
	last   *leads.BookingLead
	result leads.DeliveryResult
	err    error
}

func (f *fakeRecorder) Record(_ context.Context, lead leads.BookingLead) (leads.DeliveryResult, error) {
	f.last = &lead
	return f.result, f.err
}

func newTestRouter(cfg *config.Config, rec leads.Recorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	mod := NewModule(cfg, rec, logger.New("development"))
	mod.RegisterRoutes(&apphttp.RouterContext{
		Engine: engine,
		Root:   engine.Group(""),
		V1:     engine.Group("/api/v1"),
	})
	return engine
}

func TestEnvCheck_ReportsPresenceWithoutValues(t *testing.T) {
	cfg := &config.Config{
		SquareAccessToken: "secret-token",
		SquareLocationID:  "L123",
		SheetsWebhookURL:  "https://script.google.com/macros/s/abc/exec",
		SheetsSecret:      "hunter2",
		SheetsTransport:   config.SheetsTransportPost,
		LeadsMode:         config.LeadsModeAppend,
	}
	engine := newTestRouter(cfg, &fakeRecorder{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/env-check", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body struct {
		OK  bool `json:"ok"`
		Env struct {
			SquareConfigured bool   `json:"squareConfigured"`
			SheetsConfigured bool   `json:"sheetsConfigured"`
			RedisConfigured  bool   `json:"redisConfigured"`
			LeadsMode        string `json:"leadsMode"`
		} `json:"env"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.OK || !body.Env.SquareConfigured || !body.Env.SheetsConfigured {
		t.Errorf("unexpected presence flags: %+v", body)
	}
	if body.Env.RedisConfigured {
		t.Error("redis reported configured without REDIS_URL")
	}
	if body.Env.LeadsMode != config.LeadsModeAppend {
		t.Errorf("leadsMode = %q", body.Env.LeadsMode)
	}

	for _, secret := range []string{"secret-token", "hunter2"} {
		if strings.Contains(w.Body.String(), secret) {
			t.Errorf("response leaks secret %q", secret)
		}
	}
}

func TestTestSheets_SendsDiagnosticLead(t *testing.T) {
	rec := &fakeRecorder{result: leads.DeliveryResult{Status: 200, Succeeded: true}}
	engine := newTestRouter(&config.Config{SheetsWebhookURL: "https://example.com/hook"}, rec)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test-sheets", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if rec.last == nil {
		t.Fatal("no lead recorded")
	}
	if rec.last.Source != leads.SourceDiagnostic {
		t.Errorf("source = %q", rec.last.Source)
	}
	if rec.last.EventType != leads.EventTest {
		t.Errorf("event type = %q", rec.last.EventType)
	}
}

func TestTestSheets_SurfacesDeliveryFailure(t *testing.T) {
	rec := &fakeRecorder{err: apperr.Delivery("lead delivery failed")}
	engine := newTestRouter(&config.Config{SheetsWebhookURL: "https://example.com/hook"}, rec)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test-sheets", nil))

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
}
