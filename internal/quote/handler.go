package quote

import (
	"net/http"
	"time"

	"creekside_backend/platform/httpkit"
	"creekside_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// Handler exposes the quote calculation endpoint.
type Handler struct {
	builder *Builder
	val     *validator.Validator
}

func NewHandler(builder *Builder, val *validator.Validator) *Handler {
	return &Handler{builder: builder, val: val}
}

// Calculate handles POST /api/v1/quote.
func (h *Handler) Calculate(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "checkin, checkout (YYYY-MM-DD) and guests (1-9) are required", nil)
		return
	}

	checkin, err := time.Parse(dateLayout, req.Checkin)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "checkin must be YYYY-MM-DD", nil)
		return
	}
	checkout, err := time.Parse(dateLayout, req.Checkout)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "checkout must be YYYY-MM-DD", nil)
		return
	}

	q, err := h.builder.Build(checkin, checkout, req.Guests)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, ToResponse(q))
}
