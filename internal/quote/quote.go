// Package quote composes the per-night rate table into a fully priced stay.
package quote

import (
	"math"
	"time"

	"creekside_backend/internal/rates"
	"creekside_backend/platform/apperr"
	"creekside_backend/platform/money"
)

const (
	// CleaningFeeCents is the flat cleaning fee added to every stay.
	CleaningFeeCents int64 = 15000

	discountPct = 10.0
	taxPct      = 7.0

	minGuests = 1
	maxGuests = 9
	minNights = 3 // minimum stay length for the direct-booking discount
)

// Rate mode labels carried through to downstream logging. They carry no
// pricing logic.
const (
	LabelDiscountApplied = "Direct Booking Discount Applied"
	LabelStandardRate    = "Standard Rate"
)

// Quote is the fully priced stay. All monetary fields are integer cents.
type Quote struct {
	Checkin  time.Time
	Checkout time.Time
	Nights   int
	Guests   int

	LodgingCents    int64
	CleaningCents   int64
	DiscountApplied bool
	DiscountCents   int64
	PreTaxCents     int64
	TaxCents        int64
	GrandTotalCents int64

	RateModeLabel string
}

// Builder prices stays against the property's rate table.
type Builder struct {
	calc *rates.Calculator
}

// NewBuilder creates a Builder over the given rate calculator.
func NewBuilder(calc *rates.Calculator) *Builder {
	return &Builder{calc: calc}
}

// Build prices the stay from checkin (inclusive) to checkout (exclusive).
// The discount applies only when the stay is at least three nights and at
// least one night falls in the peak window; tax is applied to the discounted
// subtotal.
func (b *Builder) Build(checkin, checkout time.Time, guests int) (Quote, error) {
	checkin = midnight(checkin)
	checkout = midnight(checkout)

	nights := nightsBetween(checkin, checkout)
	if nights < 1 {
		return Quote{}, apperr.Validation("checkout must be at least one night after checkin")
	}
	if guests < minGuests || guests > maxGuests {
		return Quote{}, apperr.Validation("guests must be between 1 and 9")
	}

	var lodging int64
	for night := checkin; night.Before(checkout); night = night.AddDate(0, 0, 1) {
		lodging += b.calc.PriceForNight(night)
	}

	subtotal := lodging + CleaningFeeCents

	var discount int64
	discountApplied := nights >= minNights && b.calc.AnyNightInPeak(checkin, checkout)
	if discountApplied {
		discount = money.Percent(subtotal, discountPct)
	}

	preTax := subtotal - discount
	tax := money.Percent(preTax, taxPct)

	label := LabelStandardRate
	if discountApplied {
		label = LabelDiscountApplied
	}

	return Quote{
		Checkin:         checkin,
		Checkout:        checkout,
		Nights:          nights,
		Guests:          guests,
		LodgingCents:    lodging,
		CleaningCents:   CleaningFeeCents,
		DiscountApplied: discountApplied,
		DiscountCents:   discount,
		PreTaxCents:     preTax,
		TaxCents:        tax,
		GrandTotalCents: preTax + tax,
		RateModeLabel:   label,
	}, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// nightsBetween counts whole calendar days; rounding absorbs DST-shortened
// or -lengthened days in zoned inputs.
func nightsBetween(checkin, checkout time.Time) int {
	return int(math.Round(checkout.Sub(checkin).Hours() / 24))
}
