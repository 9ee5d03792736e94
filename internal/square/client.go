// Package square is a minimal client for the Square payment-links API.
// Only the quick-pay mode is used: one hosted checkout page for one fixed
// amount, no itemized cart.
package square

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"creekside_backend/platform/apperr"
	"creekside_backend/platform/config"
	"creekside_backend/platform/logger"
)

const paymentLinksPath = "/v2/online-checkout/payment-links"

// Client calls the Square payment-links endpoint.
type Client struct {
	baseURL     string
	accessToken string
	locationID  string
	version     string
	currency    string
	http        *http.Client
	log         *logger.Logger
}

// CreatePaymentLinkParams carries one quick-pay request. The idempotency key
// must be fresh per HTTP attempt; Square deduplicates by it, not by the
// display name or booking reference embedded in it.
type CreatePaymentLinkParams struct {
	IdempotencyKey string
	DisplayName    string
	AmountCents    int64
	BuyerEmail     string
	BuyerPhone     string // already E.164 best-effort
}

type prePopulatedData struct {
	BuyerEmail       string `json:"buyer_email,omitempty"`
	BuyerPhoneNumber string `json:"buyer_phone_number,omitempty"`
}

type paymentLinkRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	QuickPay       struct {
		Name       string `json:"name"`
		PriceMoney struct {
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
		} `json:"price_money"`
		LocationID string `json:"location_id"`
	} `json:"quick_pay"`
	PrePopulatedData *prePopulatedData `json:"pre_populated_data,omitempty"`
}

type paymentLinkResponse struct {
	PaymentLink struct {
		URL string `json:"url"`
	} `json:"payment_link"`
	Errors []struct {
		Category string `json:"category"`
		Code     string `json:"code"`
		Detail   string `json:"detail"`
	} `json:"errors"`
}

// NewClient creates a Square client from configuration.
func NewClient(cfg config.SquareConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.GetSquareAPIBase(), "/"),
		accessToken: cfg.GetSquareAccessToken(),
		locationID:  cfg.GetSquareLocationID(),
		version:     cfg.GetSquareVersion(),
		currency:    cfg.GetSquareCurrency(),
		http:        &http.Client{Timeout: 20 * time.Second},
		log:         log,
	}
}

// Configured reports whether the required Square credentials are present.
func (c *Client) Configured() bool {
	return c.accessToken != "" && c.locationID != ""
}

// CreatePaymentLink requests a hosted checkout page and returns its URL.
// A non-success status or a response without a URL is an upstream error
// carrying the provider status and body; there is no automatic retry.
func (c *Client) CreatePaymentLink(ctx context.Context, params CreatePaymentLinkParams) (string, error) {
	if !c.Configured() {
		return "", apperr.Configuration("square credentials are not configured")
	}

	payload := paymentLinkRequest{IdempotencyKey: params.IdempotencyKey}
	payload.QuickPay.Name = params.DisplayName
	payload.QuickPay.PriceMoney.Amount = params.AmountCents
	payload.QuickPay.PriceMoney.Currency = c.currency
	payload.QuickPay.LocationID = c.locationID

	if params.BuyerEmail != "" || params.BuyerPhone != "" {
		payload.PrePopulatedData = &prePopulatedData{
			BuyerEmail:       params.BuyerEmail,
			BuyerPhoneNumber: params.BuyerPhone,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payment link request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+paymentLinksPath, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Square-Version", c.version)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.UpstreamError("square", 0, "", err)
		return "", apperr.Wrap(apperr.KindUpstream, "payment provider unreachable", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, _ := io.ReadAll(resp.Body)

	var parsed paymentLinkResponse
	_ = json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.UpstreamError("square", resp.StatusCode, string(raw), nil)
		return "", apperr.Upstream("payment provider rejected the request").WithDetails(upstreamDetails(resp.StatusCode, raw, parsed))
	}

	if parsed.PaymentLink.URL == "" {
		c.log.UpstreamError("square", resp.StatusCode, string(raw), nil)
		return "", apperr.Upstream("payment provider response missing checkout url").WithDetails(upstreamDetails(resp.StatusCode, raw, parsed))
	}

	return parsed.PaymentLink.URL, nil
}

func upstreamDetails(status int, raw []byte, parsed paymentLinkResponse) map[string]interface{} {
	details := map[string]interface{}{"status": status}
	if len(parsed.Errors) > 0 {
		details["errors"] = parsed.Errors
	} else {
		details["body"] = strings.TrimSpace(string(raw))
	}
	return details
}
