package maps

import (
	apphttp "offerte_backend/internal/http"
	"offerte_backend/platform/logger"
	"offerte_backend/platform/validator"
)

// Module wires the address lookup HTTP routes used by the location stage.
type Module struct {
	handler *Handler
}

func NewModule(baseURL string, val *validator.Validator, log *logger.Logger) *Module {
	svc := NewService(baseURL, log)
	h := NewHandler(svc, val)
	return &Module{handler: h}
}

func (m *Module) Name() string {
	return "maps"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/maps")
	if ctx.IntakeRateLimiter != nil {
		group.Use(ctx.IntakeRateLimiter.RateLimit())
	}
	group.GET("/address-lookup", m.handler.LookupAddress)
}

var _ apphttp.Module = (*Module)(nil)
