package service

import (
	"context"
	"errors"
	"testing"

	"offerte_backend/internal/offerte/domain"
	"offerte_backend/platform/apperr"
	"offerte_backend/platform/validator"
)

func newTestFlow(t *testing.T) (*Flow, *countingPreviews) {
	t.Helper()
	previews := newCountingPreviews()
	f := NewFlow(FlowDeps{
		Validator: validator.New(),
		Previews:  previews,
		Clock:     fixedClock(testNow),
	})
	return f, previews
}

func fillValidFlow(t *testing.T, f *Flow) {
	t.Helper()
	steps := []struct {
		stage StageController
		input map[string]any
	}{
		{f.Contact, map[string]any{"name": "Jan de Vries", "email": "jan@example.com", "phone": "0612345678"}},
		{f.Location, validLocation()},
		{f.Details, map[string]any{"description": "Dakkapel plaatsen aan de achterzijde", "serviceCategory": "roofing", "workCategory": "dormer"}},
		{f.Confirmation, map[string]any{"termsAccepted": true}},
	}
	for _, s := range steps {
		if err := s.stage.MergeFields(s.input); err != nil {
			t.Fatalf("%s: %v", s.stage.Stage(), err)
		}
	}
}

func TestEndToEndStageIndependence(t *testing.T) {
	f, _ := newTestFlow(t)

	for _, st := range domain.Stages {
		c, err := f.Stage(st)
		if err != nil {
			t.Fatal(err)
		}
		if c.HasFormData() {
			t.Errorf("%s has form data at defaults", st)
		}
	}

	_ = f.Contact.MergeFields(map[string]any{"name": "Jan de Vries", "email": "jan@example.com"})
	valid, errs, err := f.CommitStage(domain.StageContact)
	if err != nil {
		t.Fatal(err)
	}
	if !valid || len(errs) != 0 {
		t.Fatalf("contact: valid=%v errs=%v", valid, errs)
	}

	input := validLocation()
	delete(input, "city")
	_ = f.Location.MergeFields(input)
	valid, errs, _ = f.CommitStage(domain.StageLocation)
	if valid {
		t.Fatal("location without city should be invalid")
	}
	if len(errs) != 1 || errs[domain.FieldCity] != domain.MsgCityRequired {
		t.Errorf("location errors = %v", errs)
	}

	if !f.Contact.Errors().Valid() {
		t.Error("contact errors changed")
	}
	for _, c := range []StageController{f.Details, f.Confirmation} {
		if !c.Errors().Valid() {
			t.Errorf("%s errors should remain hidden, got %v", c.Stage(), c.Errors())
		}
	}
}

func TestUnknownStage(t *testing.T) {
	f, _ := newTestFlow(t)
	if _, _, err := f.CommitStage("payment"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestSubmitRequiresTerms(t *testing.T) {
	f, _ := newTestFlow(t)
	fillValidFlow(t, f)
	_ = f.Confirmation.UpdateField(domain.FieldTermsAccepted, false)

	called := false
	err := f.Submit(context.Background(), SubmitterFunc(func(context.Context, domain.Submission) error {
		called = true
		return nil
	}))
	if !apperr.Is(err, apperr.KindPrecondition) {
		t.Fatalf("err = %v", err)
	}
	if called {
		t.Error("submitter called without accepted terms")
	}
	if f.Confirmation.Errors()[domain.FieldTermsAccepted] != domain.MsgTermsRequired {
		t.Error("terms error should be visible")
	}
	if f.Confirmation.Status() != domain.SubmissionIdle {
		t.Errorf("status = %s", f.Confirmation.Status())
	}
}

func TestSubmitRejectsInvalidStagesWithoutShortCircuit(t *testing.T) {
	f, _ := newTestFlow(t)
	_ = f.Confirmation.UpdateField(domain.FieldTermsAccepted, true)

	err := f.Submit(context.Background(), SubmitterFunc(func(context.Context, domain.Submission) error {
		t.Fatal("submitter must not be called")
		return nil
	}))
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v", err)
	}
	var ae *apperr.Error
	errors.As(err, &ae)
	details, ok := ae.Details.(map[domain.Stage]domain.ErrorMap)
	if !ok {
		t.Fatalf("details = %T", ae.Details)
	}
	for _, st := range []domain.Stage{domain.StageContact, domain.StageLocation, domain.StageDetails} {
		if len(details[st]) == 0 {
			t.Errorf("expected errors for %s", st)
		}
		c, _ := f.Stage(st)
		if c.Errors().Valid() {
			t.Errorf("%s errors should be committed", st)
		}
	}
}

func TestSubmitSuccessDestroysFlow(t *testing.T) {
	f, previews := newTestFlow(t)
	fillValidFlow(t, f)
	f.Details.AddPhoto(jpeg("dak.jpg", 100))

	var got domain.Submission
	err := f.Submit(context.Background(), SubmitterFunc(func(_ context.Context, s domain.Submission) error {
		if !f.Contact.Submitting() {
			t.Error("stages should be submitting during the call")
		}
		if f.Confirmation.Status() != domain.SubmissionSubmitting {
			t.Errorf("status = %s", f.Confirmation.Status())
		}
		got = s
		return nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	if got.Contact.Phone != "+31612345678" || got.Location.PostalCode != "1234AB" {
		t.Errorf("submission = %+v", got)
	}
	if len(got.Details.Photos) != 1 {
		t.Errorf("photos = %d", len(got.Details.Photos))
	}
	if !got.SubmittedAt.Equal(testNow) {
		t.Errorf("submittedAt = %v", got.SubmittedAt)
	}
	if f.Confirmation.Status() != domain.SubmissionSubmitted || f.Contact.Submitting() {
		t.Error("flow should be submitted and idle")
	}
	if !f.Destroyed() {
		t.Error("flow should be destroyed")
	}
	previews.assertReleasedOnce(t)

	err = f.Submit(context.Background(), SubmitterFunc(func(context.Context, domain.Submission) error { return nil }))
	if !apperr.Is(err, apperr.KindGone) {
		t.Errorf("resubmit err = %v", err)
	}
}

func TestSubmitFailureKeepsFlow(t *testing.T) {
	f, previews := newTestFlow(t)
	fillValidFlow(t, f)
	f.Details.AddPhoto(jpeg("dak.jpg", 100))

	err := f.Submit(context.Background(), SubmitterFunc(func(context.Context, domain.Submission) error {
		return errors.New("backend down")
	}))
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("err = %v", err)
	}
	if f.Confirmation.Status() != domain.SubmissionFailed {
		t.Errorf("status = %s", f.Confirmation.Status())
	}
	if f.Destroyed() || previews.outstanding() != 1 {
		t.Error("failed submit must keep the flow and its previews")
	}

	if err := f.Submit(context.Background(), SubmitterFunc(func(context.Context, domain.Submission) error { return nil })); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestFlowResetAndDestroy(t *testing.T) {
	f, previews := newTestFlow(t)
	fillValidFlow(t, f)
	f.Details.AddPhoto(jpeg("a.jpg", 10))
	if !f.HasFormData() || !f.IsDirty() || !f.Valid() {
		t.Fatal("filled flow should have valid form data")
	}

	f.Reset()
	if f.HasFormData() || f.IsDirty() {
		t.Error("reset flow should be empty")
	}
	if n := f.Destroy(); n != 0 {
		t.Errorf("Destroy released %d after reset", n)
	}
	previews.assertReleasedOnce(t)
}

func TestNewFlowWithoutDeps(t *testing.T) {
	f := NewFlow(FlowDeps{})

	first, ok := f.Details.AddPhoto(jpeg("a.jpg", 1024))
	if !ok {
		t.Fatalf("photo rejected: %v", f.Details.Errors())
	}
	second, ok := f.Details.AddPhoto(jpeg("b.jpg", 1024))
	if !ok {
		t.Fatalf("photo rejected: %v", f.Details.Errors())
	}
	if first.Preview == "" || first.Preview == second.Preview {
		t.Errorf("handles = %q, %q", first.Preview, second.Preview)
	}
	if err := f.Details.RemovePhoto(first.ID); err != nil {
		t.Fatal(err)
	}
	if released := f.Destroy(); released != 1 {
		t.Errorf("released = %d, want 1", released)
	}
}
