package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"creekside_backend/internal/checkout/service"
	"creekside_backend/internal/checkout/transport"
	"creekside_backend/platform/httpkit"
	"creekside_backend/platform/validator"
)

// Handler exposes the checkout endpoint.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func NewHandler(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create handles POST /create-checkout.
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "guestName and stay details (checkin, checkout, guests, nights) are required", nil)
		return
	}

	result, err := h.svc.CreateCheckout(c.Request.Context(), service.Params{
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: req.GuestPhone,

		TotalDollars: req.Total,
		Checkin:      req.Checkin,
		Checkout:     req.Checkout,
		Guests:       req.Guests,
		Nights:       req.Nights,

		Lodging:         req.Lodging,
		Cleaning:        req.Cleaning,
		DiscountApplied: req.DiscountApplied,
		DiscountAmount:  req.DiscountAmount,
		PreTaxTotal:     req.PreTaxTotal,
		TaxAmount:       req.TaxAmount,
		RateMode:        req.RateMode,

		SessionID: req.SessionID,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.CreateCheckoutResponse{
		OK:                true,
		BookingRef:        result.BookingRef,
		URL:               result.CheckoutURL,
		SquareCheckoutURL: result.CheckoutURL,
		Sheets:            result.Sheets,
	})
}
