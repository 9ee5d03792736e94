// Package service orchestrates checkout: one Square payment link plus one
// lead dispatch per request. The payment link is the operation that can fail
// the request; lead delivery rides along and only affects the reported
// outcome.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"creekside_backend/internal/leads"
	"creekside_backend/internal/square"
	"creekside_backend/platform/apperr"
	"creekside_backend/platform/logger"
	"creekside_backend/platform/money"
	"creekside_backend/platform/phone"
)

// PaymentLinker is the slice of the Square client this service needs.
type PaymentLinker interface {
	CreatePaymentLink(ctx context.Context, params square.CreatePaymentLinkParams) (string, error)
}

// Params is one checkout attempt. Pricing comes pre-computed from the quote
// the guest accepted; the service validates shape, not arithmetic.
type Params struct {
	GuestName  string
	GuestEmail string
	GuestPhone string

	TotalDollars float64
	Checkin      string
	Checkout     string
	Guests       int
	Nights       int

	Lodging         float64
	Cleaning        float64
	DiscountApplied bool
	DiscountAmount  float64
	PreTaxTotal     float64
	TaxAmount       float64
	RateMode        string

	SessionID string
}

// Result is the orchestration outcome. Sheets reflects lead delivery only;
// a checkout with a URL and an undelivered lead is still a success.
type Result struct {
	BookingRef  string
	CheckoutURL string
	Sheets      leads.DispatchOutcome
}

type Service struct {
	payments   PaymentLinker
	dispatcher leads.Dispatcher
	log        *logger.Logger
}

func New(payments PaymentLinker, dispatcher leads.Dispatcher, log *logger.Logger) *Service {
	return &Service{payments: payments, dispatcher: dispatcher, log: log}
}

// CreateCheckout validates the request, creates a hosted payment link and
// dispatches a CHECKOUT_CLICKED lead carrying that link. Each call mints a
// fresh booking reference and a fresh payment idempotency key; a client
// retry is a new checkout, never a replay of the previous one.
func (s *Service) CreateCheckout(ctx context.Context, p Params) (Result, error) {
	if p.Checkin == "" || p.Checkout == "" || p.Guests < 1 || p.Nights < 1 {
		return Result{}, apperr.Validation("checkin, checkout, guests and nights are required")
	}

	cents, err := money.ToCents(p.TotalDollars)
	if err != nil {
		return Result{}, apperr.Validation("total must be a finite number")
	}
	if cents < 1 {
		return Result{}, apperr.Validation("total must be at least one cent")
	}

	bookingRef := leads.NewBookingRef()

	url, err := s.payments.CreatePaymentLink(ctx, square.CreatePaymentLinkParams{
		IdempotencyKey: uuid.NewString(),
		DisplayName:    fmt.Sprintf("Stay %s to %s (%s)", p.Checkin, p.Checkout, bookingRef),
		AmountCents:    cents,
		BuyerEmail:     p.GuestEmail,
		BuyerPhone:     phone.NormalizeE164(p.GuestPhone),
	})
	if err != nil {
		return Result{}, err
	}

	lead := leads.BookingLead{
		BookingRef: bookingRef,
		CreatedAt:  leads.Timestamp(time.Now()),
		Source:     leads.SourceWebsiteWidget,
		EventType:  leads.EventCheckoutClicked,
		SessionID:  p.SessionID,

		GuestName:  p.GuestName,
		GuestEmail: p.GuestEmail,
		GuestPhone: phone.NormalizeE164(p.GuestPhone),

		Checkin:  p.Checkin,
		Checkout: p.Checkout,
		Guests:   p.Guests,
		Nights:   p.Nights,

		Lodging:         p.Lodging,
		Cleaning:        p.Cleaning,
		Total:           p.TotalDollars,
		DiscountApplied: p.DiscountApplied,
		DiscountAmount:  p.DiscountAmount,
		PreTaxTotal:     p.PreTaxTotal,
		TaxAmount:       p.TaxAmount,
		RateMode:        p.RateMode,

		SquareCheckoutURL: url,
	}

	outcome := s.dispatcher.Dispatch(ctx, lead)
	s.log.Info("checkout created",
		"booking_ref", bookingRef,
		"amount_cents", cents,
		"lead_queued", outcome.Queued,
		"lead_delivered", outcome.Delivered,
	)

	return Result{BookingRef: bookingRef, CheckoutURL: url, Sheets: outcome}, nil
}
