package leads

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"creekside_backend/platform/apperr"
	"creekside_backend/platform/config"
	"creekside_backend/platform/logger"
)

// Actions understood by the spreadsheet webhook.
const (
	actionAppendLead = "appendLead"
	actionUpsertLead = "upsertLead"
)

const retryBackoff = 500 * time.Millisecond

// DeliveryResult reports the outcome of one webhook delivery.
type DeliveryResult struct {
	Status    int  `json:"status"`
	Succeeded bool `json:"succeeded"`
}

// Recorder delivers a lead to the external log.
type Recorder interface {
	Record(ctx context.Context, lead BookingLead) (DeliveryResult, error)
}

// SheetsRecorder delivers leads to the spreadsheet webhook. The endpoint is
// known to answer with cross-host 30x redirects; a client that follows them
// naively downgrades POST to GET and silently drops the payload, so
// redirect-following is disabled and exactly one hop is re-issued manually
// as a fresh POST with the identical body.
type SheetsRecorder struct {
	webhookURL string
	secret     string
	transport  string
	action     string
	timeout    time.Duration
	client     *http.Client
	log        *logger.Logger
}

type sheetPayload struct {
	Action string `json:"action"`
	Secret string `json:"secret"`
	BookingLead
}

// NewSheetsRecorder creates a recorder from configuration.
func NewSheetsRecorder(cfg config.SheetsConfig, log *logger.Logger) *SheetsRecorder {
	action := actionAppendLead
	if cfg.GetLeadsMode() == config.LeadsModeUpsert {
		action = actionUpsertLead
	}

	return &SheetsRecorder{
		webhookURL: cfg.GetSheetsWebhookURL(),
		secret:     cfg.GetSheetsSecret(),
		transport:  cfg.GetSheetsTransport(),
		action:     action,
		timeout:    cfg.GetSheetsTimeout(),
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		log: log,
	}
}

// Record delivers the lead. The payload is marshalled once so every attempt
// and redirect hop sends byte-identical JSON. Non-timeout failures get one
// extra attempt after a fixed backoff; a timeout is reported immediately.
func (r *SheetsRecorder) Record(ctx context.Context, lead BookingLead) (DeliveryResult, error) {
	if r.webhookURL == "" {
		return DeliveryResult{}, apperr.Configuration("sheets webhook url is not configured")
	}

	body, err := json.Marshal(sheetPayload{
		Action:      r.action,
		Secret:      r.secret,
		BookingLead: lead,
	})
	if err != nil {
		return DeliveryResult{}, fmt.Errorf("marshal lead payload: %w", err)
	}

	result, err := r.attempt(ctx, body)
	if err == nil && result.Succeeded {
		r.log.DeliveryOutcome(lead.BookingRef, string(lead.EventType), result.Status, true)
		return result, nil
	}

	if !isTimeout(err) {
		select {
		case <-ctx.Done():
			return result, apperr.Wrap(apperr.KindDelivery, "lead delivery cancelled", ctx.Err())
		case <-time.After(retryBackoff):
		}
		result, err = r.attempt(ctx, body)
	}

	if err != nil {
		r.log.DeliveryOutcome(lead.BookingRef, string(lead.EventType), result.Status, false)
		return result, apperr.Wrap(apperr.KindDelivery, "lead delivery failed", err)
	}
	if !result.Succeeded {
		r.log.DeliveryOutcome(lead.BookingRef, string(lead.EventType), result.Status, false)
		return result, apperr.Delivery(fmt.Sprintf("lead webhook returned status %d", result.Status))
	}

	r.log.DeliveryOutcome(lead.BookingRef, string(lead.EventType), result.Status, true)
	return result, nil
}

// attempt issues one delivery, following at most one redirect hop while
// preserving the method and body.
func (r *SheetsRecorder) attempt(ctx context.Context, body []byte) (DeliveryResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.send(ctx, r.webhookURL, body)
	if err != nil {
		return DeliveryResult{}, err
	}

	if isRedirect(resp.StatusCode) {
		target, err := redirectTarget(resp)
		drain(resp)
		if err != nil {
			return DeliveryResult{Status: resp.StatusCode}, err
		}

		resp, err = r.send(ctx, target, body)
		if err != nil {
			return DeliveryResult{}, err
		}
		if isRedirect(resp.StatusCode) {
			// The destination redirects at most once in practice; a second
			// hop means something is wrong, so stop instead of looping.
			drain(resp)
			return DeliveryResult{Status: resp.StatusCode},
				fmt.Errorf("webhook redirected again after one hop (status %d)", resp.StatusCode)
		}
	}

	drain(resp)
	return DeliveryResult{
		Status:    resp.StatusCode,
		Succeeded: resp.StatusCode >= 200 && resp.StatusCode < 300,
	}, nil
}

// send issues a single request using the configured transport. The GET
// variant encodes the payload into a query parameter to sidestep the
// redirect/method problem entirely; the secret stays inside the payload.
func (r *SheetsRecorder) send(ctx context.Context, rawURL string, body []byte) (*http.Response, error) {
	var req *http.Request
	var err error

	if r.transport == config.SheetsTransportGet {
		encoded := base64.RawURLEncoding.EncodeToString(body)
		sep := "?"
		if u, perr := url.Parse(rawURL); perr == nil && u.RawQuery != "" {
			sep = "&"
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, rawURL+sep+"payload="+encoded, nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	if err != nil {
		return nil, err
	}

	return r.client.Do(req)
}

func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

// redirectTarget resolves the Location header against the request URL, so
// relative redirects work as well as the usual cross-host absolute ones.
func redirectTarget(resp *http.Response) (string, error) {
	location := resp.Header.Get("Location")
	if location == "" {
		return "", errors.New("webhook redirect without Location header")
	}

	parsed, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("webhook redirect location unparseable: %w", err)
	}
	return resp.Request.URL.ResolveReference(parsed).String(), nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
