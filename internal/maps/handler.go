package maps

import (
	"net/http"

	"offerte_backend/platform/httpkit"
	"offerte_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler exposes the address lookup endpoint.
type Handler struct {
	svc *Service
	val *validator.Validator
}

func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// LookupAddress handles GET /api/v1/maps/address-lookup?postalCode=...&houseNumber=... or ?q=...
func (h *Handler) LookupAddress(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query 'q' (min 3 chars) or a valid 'postalCode' is required", validator.FieldErrors(err))
		return
	}

	var (
		results []AddressSuggestion
		err     error
	)
	if req.PostalCode != "" {
		results, err = h.svc.LookupPostcode(c.Request.Context(), req.PostalCode, req.HouseNumber)
	} else {
		results, err = h.svc.SearchAddress(c.Request.Context(), req.Query)
	}
	if err != nil {
		httpkit.Error(c, http.StatusBadGateway, "address lookup service unavailable", nil)
		return
	}

	httpkit.OK(c, results)
}
