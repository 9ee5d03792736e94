package square

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"creekside_backend/platform/apperr"
	"creekside_backend/platform/config"
	"creekside_backend/platform/logger"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cfg := &config.Config{
		SquareAccessToken: "test-token",
		SquareLocationID:  "L123",
		SquareAPIBase:     baseURL,
		SquareVersion:     "2024-01-18",
		SquareCurrency:    "USD",
	}
	return NewClient(cfg, logger.New("development"))
}

func TestCreatePaymentLink_Success(t *testing.T) {
	var got paymentLinkRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != paymentLinksPath {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Fatalf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Square-Version") == "" {
			t.Fatal("missing Square-Version header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"payment_link": map[string]string{"url": "https://square.link/u/abc"},
		})
	}))
	defer srv.Close()

	url, err := testClient(t, srv.URL).CreatePaymentLink(context.Background(), CreatePaymentLinkParams{
		IdempotencyKey: "idem-1",
		DisplayName:    "Stay CTE-1-aaaaaa",
		AmountCents:    105930,
		BuyerEmail:     "guest@example.com",
		BuyerPhone:     "+12125550123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://square.link/u/abc" {
		t.Fatalf("unexpected url %q", url)
	}

	if got.IdempotencyKey != "idem-1" {
		t.Fatalf("idempotency key not forwarded, got %q", got.IdempotencyKey)
	}
	if got.QuickPay.PriceMoney.Amount != 105930 || got.QuickPay.PriceMoney.Currency != "USD" {
		t.Fatalf("unexpected price money: %+v", got.QuickPay.PriceMoney)
	}
	if got.QuickPay.LocationID != "L123" {
		t.Fatalf("location id not forwarded, got %q", got.QuickPay.LocationID)
	}
	if got.PrePopulatedData == nil || got.PrePopulatedData.BuyerPhoneNumber != "+12125550123" {
		t.Fatalf("buyer data not forwarded: %+v", got.PrePopulatedData)
	}
}

func TestCreatePaymentLink_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"errors": []map[string]string{{"category": "AUTHENTICATION_ERROR", "code": "UNAUTHORIZED", "detail": "bad token"}},
		})
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).CreatePaymentLink(context.Background(), CreatePaymentLinkParams{
		IdempotencyKey: "idem-2",
		DisplayName:    "Stay",
		AmountCents:    100,
	})
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestCreatePaymentLink_MissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"payment_link": map[string]string{}})
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).CreatePaymentLink(context.Background(), CreatePaymentLinkParams{
		IdempotencyKey: "idem-3",
		DisplayName:    "Stay",
		AmountCents:    100,
	})
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error for missing url, got %v", err)
	}
}

func TestCreatePaymentLink_NotConfigured(t *testing.T) {
	client := NewClient(&config.Config{SquareAPIBase: "https://connect.squareup.com"}, logger.New("development"))

	_, err := client.CreatePaymentLink(context.Background(), CreatePaymentLinkParams{AmountCents: 100})
	if !apperr.Is(err, apperr.KindConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
