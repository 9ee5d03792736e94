package quote

import "creekside_backend/platform/money"

// Request contains the stay parameters for a quote calculation.
type Request struct {
	Checkin  string `json:"checkin" validate:"required,datetime=2006-01-02"`
	Checkout string `json:"checkout" validate:"required,datetime=2006-01-02"`
	Guests   int    `json:"guests" validate:"required,min=1,max=9"`
}

// Response is the priced stay in dollars, the representation the widget and
// the lead webhook consume.
type Response struct {
	Nights          int     `json:"nights"`
	Lodging         float64 `json:"lodging"`
	Cleaning        float64 `json:"cleaning"`
	DiscountApplied bool    `json:"discountApplied"`
	DiscountAmount  float64 `json:"discountAmount"`
	PreTaxTotal     float64 `json:"preTaxTotal"`
	TaxAmount       float64 `json:"taxAmount"`
	Total           float64 `json:"total"`
	RateMode        string  `json:"rateMode"`
}

// ToResponse converts a Quote to its wire representation. Cents are converted
// to dollars only at this boundary.
func ToResponse(q Quote) Response {
	return Response{
		Nights:          q.Nights,
		Lodging:         money.Dollars(q.LodgingCents),
		Cleaning:        money.Dollars(q.CleaningCents),
		DiscountApplied: q.DiscountApplied,
		DiscountAmount:  money.Dollars(q.DiscountCents),
		PreTaxTotal:     money.Dollars(q.PreTaxCents),
		TaxAmount:       money.Dollars(q.TaxCents),
		Total:           money.Dollars(q.GrandTotalCents),
		RateMode:        q.RateModeLabel,
	}
}
