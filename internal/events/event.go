// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"offerte_backend/internal/offerte/domain"
	"offerte_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewBaseEventAt = events.NewBaseEventAt
)

// =============================================================================
// Offerte Domain Events
// =============================================================================

// QuoteRequestSubmitted is published once all four intake stages committed
// cleanly and the visitor accepted the terms.
type QuoteRequestSubmitted struct {
	BaseEvent
	SessionID  uuid.UUID         `json:"sessionId"`
	Submission domain.Submission `json:"submission"`
}

func (e QuoteRequestSubmitted) EventName() string { return "offerte.quote_request.submitted" }

// IntakeAbandoned is published when a session is torn down without submitting.
type IntakeAbandoned struct {
	BaseEvent
	SessionID   uuid.UUID `json:"sessionId"`
	HadFormData bool      `json:"hadFormData"`
	Expired     bool      `json:"expired"`
}

func (e IntakeAbandoned) EventName() string { return "offerte.intake.abandoned" }
