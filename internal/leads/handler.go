package leads

import (
	"net/http"
	"time"

	"creekside_backend/platform/httpkit"
	"creekside_backend/platform/phone"
	"creekside_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// TrackEventRequest is the funnel-logging payload posted by the widget.
type TrackEventRequest struct {
	EventType string `json:"eventType" validate:"required,oneof=QUOTE_VIEWED CHECKOUT_CLICKED TEST"`
	SessionID string `json:"sessionId" validate:"required"`

	GuestName  string `json:"guestName"`
	GuestEmail string `json:"guestEmail" validate:"omitempty,email"`
	GuestPhone string `json:"guestPhone"`

	Checkin  string `json:"checkin" validate:"required"`
	Checkout string `json:"checkout" validate:"required"`
	Guests   int    `json:"guests" validate:"required,min=1"`
	Nights   int    `json:"nights" validate:"required,min=1"`

	Lodging         float64 `json:"lodging"`
	Cleaning        float64 `json:"cleaning"`
	Total           float64 `json:"total"`
	DiscountApplied bool    `json:"discountApplied"`
	DiscountAmount  float64 `json:"discountAmount"`
	PreTaxTotal     float64 `json:"preTaxTotal"`
	TaxAmount       float64 `json:"taxAmount"`
	RateMode        string  `json:"rateMode"`
}

// Handler exposes the funnel tracking endpoint.
type Handler struct {
	rec Recorder
	val *validator.Validator
}

func NewHandler(rec Recorder, val *validator.Validator) *Handler {
	return &Handler{rec: rec, val: val}
}

// Track handles POST /track-event. Unlike the checkout ride-along, a pure
// tracking call has nothing else to succeed at, so a delivery failure is
// surfaced to the caller.
func (h *Handler) Track(c *gin.Context) {
	var req TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "eventType, sessionId and stay details are required", nil)
		return
	}

	lead := BookingLead{
		BookingRef: NewBookingRef(),
		CreatedAt:  Timestamp(time.Now()),
		Source:     SourceWebsiteWidget,
		EventType:  EventType(req.EventType),
		SessionID:  req.SessionID,

		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: phone.NormalizeE164(req.GuestPhone),

		Checkin:  req.Checkin,
		Checkout: req.Checkout,
		Guests:   req.Guests,
		Nights:   req.Nights,

		Lodging:         req.Lodging,
		Cleaning:        req.Cleaning,
		Total:           req.Total,
		DiscountApplied: req.DiscountApplied,
		DiscountAmount:  req.DiscountAmount,
		PreTaxTotal:     req.PreTaxTotal,
		TaxAmount:       req.TaxAmount,
		RateMode:        req.RateMode,
	}

	if _, err := h.rec.Record(c.Request.Context(), lead); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"ok": true, "bookingRef": lead.BookingRef})
}
