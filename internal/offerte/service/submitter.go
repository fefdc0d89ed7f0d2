package service

import (
	"context"

	"offerte_backend/internal/events"
	"offerte_backend/internal/offerte/domain"

	"github.com/google/uuid"
)

// EventSubmitter hands a submission to the event bus. Handlers run
// synchronously so a failing handler fails the submit and the visitor can
// retry with the form intact.
type EventSubmitter struct {
	Bus       events.Bus
	SessionID uuid.UUID
}

// Submit publishes QuoteRequestSubmitted.
func (s EventSubmitter) Submit(ctx context.Context, submission domain.Submission) error {
	return s.Bus.PublishSync(ctx, events.QuoteRequestSubmitted{
		BaseEvent:  events.NewBaseEventAt(submission.SubmittedAt),
		SessionID:  s.SessionID,
		Submission: submission,
	})
}
