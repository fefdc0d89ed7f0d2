// Package offerte provides the public quote intake bounded context module.
// This file wires the intake flow, its session store and the HTTP handler.
package offerte

import (
	"context"

	"offerte_backend/internal/adapters/storage"
	"offerte_backend/internal/events"
	apphttp "offerte_backend/internal/http"
	"offerte_backend/internal/offerte/handler"
	"offerte_backend/internal/offerte/preview"
	"offerte_backend/internal/offerte/service"
	"offerte_backend/internal/offerte/session"
	"offerte_backend/internal/offerte/upload"
	"offerte_backend/platform/config"
	"offerte_backend/platform/logger"
	"offerte_backend/platform/validator"
)

// Module is the offerte bounded context module implementing http.Module.
type Module struct {
	handler  *handler.Handler
	sessions *session.Store
	previews *preview.Registry
	uploads  *upload.Service
}

// NewModule creates and initializes the offerte module. storageSvc may be nil
// when object storage is not configured; photo uploads are then unavailable.
func NewModule(eventBus events.Bus, storageSvc storage.StorageService, bucket string, val *validator.Validator, cfg config.OfferteConfig, log *logger.Logger) *Module {
	previews := preview.NewRegistry()
	sessions := session.NewStore(session.Options{
		Flow: service.FlowDeps{
			Validator: val,
			Previews:  previews,
			Logger:    log,
		},
		Bus: eventBus,
		Log: log,
		TTL: cfg.GetSessionTTL(),
	})
	uploads := upload.New(sessions, storageSvc, bucket, log)

	// Log the outcome of every intake. Downstream lead creation subscribes
	// to the same events.
	eventBus.Subscribe(events.QuoteRequestSubmitted{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.QuoteRequestSubmitted)
		if !ok {
			return nil
		}
		log.WithContext(ctx).Info("quote request received",
			"event_id", e.EventID().String(),
			"session_id", e.SessionID.String(),
			"service_category", string(e.Submission.Details.ServiceCategory),
			"work_category", string(e.Submission.Details.WorkCategory),
			"photos", len(e.Submission.Details.Photos),
		)
		return nil
	}))
	eventBus.Subscribe(events.IntakeAbandoned{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.IntakeAbandoned)
		if !ok {
			return nil
		}
		log.Info("intake abandoned", "event_id", e.EventID().String(), "session_id", e.SessionID.String(), "had_form_data", e.HadFormData, "expired", e.Expired)
		return nil
	}))

	return &Module{
		handler:  handler.New(sessions, previews, uploads, eventBus, val, log),
		sessions: sessions,
		previews: previews,
		uploads:  uploads,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "offerte"
}

// Sessions returns the session store for the idle-session sweeper.
func (m *Module) Sessions() *session.Store {
	return m.sessions
}

// RegisterRoutes mounts the public intake routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/offerte")
	if ctx.IntakeRateLimiter != nil {
		group.Use(ctx.IntakeRateLimiter.RateLimit())
	}
	m.handler.RegisterRoutes(group)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
