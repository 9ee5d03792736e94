package service

import (
	"context"
	"math"
	"regexp"
	"testing"

	"creekside_backend/internal/leads"
	"creekside_backend/internal/square"
	"creekside_backend/platform/apperr"
	"creekside_backend/platform/logger"
)

type fakeLinker struct {
	calls []square.CreatePaymentLinkParams
	url   string
	err   error
}

func (f *fakeLinker) CreatePaymentLink(_ context.Context, params square.CreatePaymentLinkParams) (string, error) {
	f.calls = append(f.calls, params)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeDispatcher struct {
	leads   []leads.BookingLead
	outcome leads.DispatchOutcome
}

func (f *fakeDispatcher) Dispatch(_ context.Context, lead leads.BookingLead) leads.DispatchOutcome {
	f.leads = append(f.leads, lead)
	return f.outcome
}

func validParams() Params {
	return Params{
		GuestName:    "Jordan Miles",
		GuestEmail:   "jordan@example.com",
		GuestPhone:   "555 867 5309",
		TotalDollars: 1059.30,
		Checkin:      "2026-07-03",
		Checkout:     "2026-07-06",
		Guests:       4,
		Nights:       3,
		Lodging:      950,
		Cleaning:     150,
		PreTaxTotal:  990,
		TaxAmount:    69.30,
		RateMode:     "Direct Booking Discount Applied",
		SessionID:    "sess-123",
	}
}

func TestCreateCheckout_Success(t *testing.T) {
	linker := &fakeLinker{url: "https://square.link/u/abc123"}
	disp := &fakeDispatcher{outcome: leads.DispatchOutcome{Delivered: true, Status: 200}}
	svc := New(linker, disp, logger.New("development"))

	result, err := svc.CreateCheckout(context.Background(), validParams())
	if err != nil {
		t.Fatalf("CreateCheckout returned error: %v", err)
	}

	if result.CheckoutURL != "https://square.link/u/abc123" {
		t.Errorf("checkout url = %q", result.CheckoutURL)
	}
	if !regexp.MustCompile(`^CTE-\d{13}-[0-9a-f]{6}$`).MatchString(result.BookingRef) {
		t.Errorf("booking ref %q has unexpected shape", result.BookingRef)
	}
	if !result.Sheets.Delivered {
		t.Errorf("expected delivered outcome, got %+v", result.Sheets)
	}

	if len(linker.calls) != 1 {
		t.Fatalf("expected 1 payment link call, got %d", len(linker.calls))
	}
	call := linker.calls[0]
	if call.AmountCents != 105930 {
		t.Errorf("amount = %d cents, want 105930", call.AmountCents)
	}
	if call.BuyerPhone != "+15558675309" {
		t.Errorf("buyer phone = %q, want E.164", call.BuyerPhone)
	}
	if call.IdempotencyKey == "" {
		t.Error("idempotency key is empty")
	}

	if len(disp.leads) != 1 {
		t.Fatalf("expected 1 dispatched lead, got %d", len(disp.leads))
	}
	lead := disp.leads[0]
	if lead.EventType != leads.EventCheckoutClicked {
		t.Errorf("event type = %q", lead.EventType)
	}
	if lead.BookingRef != result.BookingRef {
		t.Errorf("lead booking ref %q != result %q", lead.BookingRef, result.BookingRef)
	}
	if lead.SquareCheckoutURL != result.CheckoutURL {
		t.Errorf("lead checkout url %q != result %q", lead.SquareCheckoutURL, result.CheckoutURL)
	}
	if lead.Source != leads.SourceWebsiteWidget {
		t.Errorf("lead source = %q", lead.Source)
	}
}

func TestCreateCheckout_FreshKeysPerAttempt(t *testing.T) {
	linker := &fakeLinker{url: "https://square.link/u/abc123"}
	svc := New(linker, &fakeDispatcher{}, logger.New("development"))

	first, err := svc.CreateCheckout(context.Background(), validParams())
	if err != nil {
		t.Fatalf("first attempt: %v", err)
	}
	second, err := svc.CreateCheckout(context.Background(), validParams())
	if err != nil {
		t.Fatalf("second attempt: %v", err)
	}

	if linker.calls[0].IdempotencyKey == linker.calls[1].IdempotencyKey {
		t.Error("idempotency key reused across attempts")
	}
	if first.BookingRef == second.BookingRef {
		t.Error("booking ref reused across attempts")
	}
}

func TestCreateCheckout_RejectsBadTotals(t *testing.T) {
	svc := New(&fakeLinker{url: "x"}, &fakeDispatcher{}, logger.New("development"))

	for _, total := range []float64{0, 0.004, -5, math.NaN(), math.Inf(1)} {
		p := validParams()
		p.TotalDollars = total
		_, err := svc.CreateCheckout(context.Background(), p)
		if !apperr.Is(err, apperr.KindValidation) {
			t.Errorf("total %v: expected validation error, got %v", total, err)
		}
	}
}

func TestCreateCheckout_RequiresStayDetails(t *testing.T) {
	linker := &fakeLinker{url: "x"}
	svc := New(linker, &fakeDispatcher{}, logger.New("development"))

	cases := []func(*Params){
		func(p *Params) { p.Checkin = "" },
		func(p *Params) { p.Checkout = "" },
		func(p *Params) { p.Guests = 0 },
		func(p *Params) { p.Nights = 0 },
	}
	for i, mutate := range cases {
		p := validParams()
		mutate(&p)
		_, err := svc.CreateCheckout(context.Background(), p)
		if !apperr.Is(err, apperr.KindValidation) {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}
	if len(linker.calls) != 0 {
		t.Errorf("payment link called %d times for invalid requests", len(linker.calls))
	}
}

func TestCreateCheckout_PaymentFailureStopsOrchestration(t *testing.T) {
	linker := &fakeLinker{err: apperr.Upstream("payment provider rejected the request")}
	disp := &fakeDispatcher{}
	svc := New(linker, disp, logger.New("development"))

	_, err := svc.CreateCheckout(context.Background(), validParams())
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if len(disp.leads) != 0 {
		t.Errorf("lead dispatched despite payment failure")
	}
}

func TestCreateCheckout_LeadFailureDoesNotFailCheckout(t *testing.T) {
	linker := &fakeLinker{url: "https://square.link/u/abc123"}
	disp := &fakeDispatcher{outcome: leads.DispatchOutcome{Delivered: false, Status: 502}}
	svc := New(linker, disp, logger.New("development"))

	result, err := svc.CreateCheckout(context.Background(), validParams())
	if err != nil {
		t.Fatalf("checkout failed on lead delivery failure: %v", err)
	}
	if result.CheckoutURL == "" {
		t.Error("checkout url missing")
	}
	if result.Sheets.Delivered || result.Sheets.Queued {
		t.Errorf("expected failed outcome, got %+v", result.Sheets)
	}
}
