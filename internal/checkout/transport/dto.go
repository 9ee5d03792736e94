package transport

import "creekside_backend/internal/leads"

// CreateCheckoutRequest is the widget's checkout payload. Pricing fields are
// trusted from the caller but re-validated for numeric sanity; this system
// does not re-derive the price server-side.
type CreateCheckoutRequest struct {
	GuestName  string `json:"guestName" validate:"required,min=1,max=200"`
	GuestEmail string `json:"guestEmail" validate:"omitempty,email"`
	GuestPhone string `json:"guestPhone"`

	Total    float64 `json:"total"`
	Checkin  string  `json:"checkin" validate:"required"`
	Checkout string  `json:"checkout" validate:"required"`
	Guests   int     `json:"guests" validate:"required,min=1"`
	Nights   int     `json:"nights" validate:"required,min=1"`

	Lodging         float64 `json:"lodging,omitempty"`
	Cleaning        float64 `json:"cleaning,omitempty"`
	DiscountApplied bool    `json:"discountApplied,omitempty"`
	DiscountAmount  float64 `json:"discountAmount,omitempty"`
	PreTaxTotal     float64 `json:"preTaxTotal,omitempty"`
	TaxAmount       float64 `json:"taxAmount,omitempty"`
	RateMode        string  `json:"rateMode,omitempty"`

	SessionID string `json:"sessionId,omitempty"`
}

// CreateCheckoutResponse reports the orchestration outcome for both
// sub-operations: the payment link and the lead delivery.
type CreateCheckoutResponse struct {
	OK                bool                  `json:"ok"`
	BookingRef        string                `json:"bookingRef"`
	URL               string                `json:"url"`
	SquareCheckoutURL string                `json:"squareCheckoutUrl"`
	Sheets            leads.DispatchOutcome `json:"sheets"`
}
