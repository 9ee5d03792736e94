// Package leads records funnel events to the spreadsheet webhook, the
// system of record for quotes and bookings.
package leads

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Source identifies where a funnel event originated.
type Source string

const (
	SourceWebsiteWidget Source = "website-widget"
	SourceDiagnostic    Source = "diagnostic"
)

// EventType is the tracked user action.
type EventType string

const (
	EventQuoteViewed     EventType = "QUOTE_VIEWED"
	EventCheckoutClicked EventType = "CHECKOUT_CLICKED"
	EventTest            EventType = "TEST"
)

// BookingLead is one funnel event. It is created once, never mutated, and
// appended (or upserted, depending on deployment mode) to the external log.
// Monetary fields are dollars, the representation the sheet stores.
type BookingLead struct {
	BookingRef string    `json:"bookingRef"`
	CreatedAt  string    `json:"createdAt"`
	Source     Source    `json:"source"`
	EventType  EventType `json:"eventType,omitempty"`
	SessionID  string    `json:"sessionId,omitempty"`

	GuestName  string `json:"guestName"`
	GuestEmail string `json:"guestEmail"`
	GuestPhone string `json:"guestPhone"`

	Checkin  string `json:"checkin"`
	Checkout string `json:"checkout"`
	Guests   int    `json:"guests"`
	Nights   int    `json:"nights"`

	Lodging         float64 `json:"lodging"`
	Cleaning        float64 `json:"cleaning"`
	Total           float64 `json:"total"`
	DiscountApplied bool    `json:"discountApplied"`
	DiscountAmount  float64 `json:"discountAmount"`
	PreTaxTotal     float64 `json:"preTaxTotal"`
	TaxAmount       float64 `json:"taxAmount"`
	RateMode        string  `json:"rateMode"`

	SquareCheckoutURL string `json:"squareCheckoutUrl"`
}

// NewBookingRef generates a human-traceable, globally unique booking
// reference: CTE-<epochMillis>-<6 hex chars>. It is independent of the
// payment idempotency key.
func NewBookingRef() string {
	var suffix [3]byte
	_, _ = rand.Read(suffix[:])
	return fmt.Sprintf("CTE-%d-%s", time.Now().UnixMilli(), hex.EncodeToString(suffix[:]))
}

// Timestamp formats a lead creation time the way the sheet expects.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
