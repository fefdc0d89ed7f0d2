package service

import (
	"context"
	"errors"
	"testing"

	"offerte_backend/internal/events"
	"offerte_backend/internal/offerte/domain"
	"offerte_backend/platform/logger"

	"github.com/google/uuid"
)

func TestEventSubmitterPublishesSubmission(t *testing.T) {
	bus := events.NewInMemoryBus(logger.Discard())
	sessionID := uuid.New()

	var got events.QuoteRequestSubmitted
	bus.Subscribe(events.QuoteRequestSubmitted{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		got = e.(events.QuoteRequestSubmitted)
		return nil
	}))

	f, _ := newTestFlow(t)
	fillValidFlow(t, f)
	if err := f.Submit(context.Background(), EventSubmitter{Bus: bus, SessionID: sessionID}); err != nil {
		t.Fatal(err)
	}
	if got.SessionID != sessionID {
		t.Errorf("session id = %s", got.SessionID)
	}
	if got.Submission.Contact.Name != "Jan de Vries" {
		t.Errorf("submission = %+v", got.Submission)
	}
	if !got.OccurredAt().Equal(got.Submission.SubmittedAt) || got.EventID() == uuid.Nil {
		t.Errorf("event = %s at %v, submitted at %v", got.EventID(), got.OccurredAt(), got.Submission.SubmittedAt)
	}
}

func TestEventSubmitterHandlerFailureFailsSubmit(t *testing.T) {
	bus := events.NewInMemoryBus(logger.Discard())
	bus.Subscribe(events.QuoteRequestSubmitted{}.EventName(), events.HandlerFunc(func(context.Context, events.Event) error {
		return errors.New("crm unavailable")
	}))

	f, _ := newTestFlow(t)
	fillValidFlow(t, f)
	if err := f.Submit(context.Background(), EventSubmitter{Bus: bus, SessionID: uuid.New()}); err == nil {
		t.Fatal("expected error")
	}
	if f.Confirmation.Status() != domain.SubmissionFailed {
		t.Errorf("status = %s", f.Confirmation.Status())
	}
}
