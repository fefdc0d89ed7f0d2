package service

import (
	"context"
	"fmt"
	"time"

	"offerte_backend/internal/offerte/domain"
	"offerte_backend/platform/apperr"
	"offerte_backend/platform/logger"
	"offerte_backend/platform/validator"

	"github.com/google/uuid"
)

// StageController is the contract every stage controller fulfils.
type StageController interface {
	Stage() domain.Stage
	UpdateField(name string, raw any) error
	MergeFields(partial map[string]any) error
	Validate() domain.ErrorMap
	ValidateAndCommit() bool
	Errors() domain.ErrorMap
	Reset()
	IsDirty() bool
	HasFormData() bool
	Submitting() bool
	SetSubmitting(bool)
}

var (
	_ StageController = (*ContactController)(nil)
	_ StageController = (*LocationController)(nil)
	_ StageController = (*DetailsController)(nil)
	_ StageController = (*ConfirmationController)(nil)
)

// Submitter hands a validated submission to whatever transports it.
type Submitter interface {
	Submit(ctx context.Context, submission domain.Submission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, submission domain.Submission) error

// Submit calls f.
func (f SubmitterFunc) Submit(ctx context.Context, submission domain.Submission) error {
	return f(ctx, submission)
}

// FlowDeps are the collaborators of a Flow.
type FlowDeps struct {
	Validator *validator.Validator
	// Previews defaults to handles without preview bytes.
	Previews PreviewProvider
	Logger    *logger.Logger
	// Clock defaults to time.Now.
	Clock func() time.Time
	// NewID defaults to uuid.New.
	NewID func() uuid.UUID
}

// Flow holds the four stage controllers of one visitor's intake. The
// controllers are independent; Flow only coordinates submit and teardown.
type Flow struct {
	Contact      *ContactController
	Location     *LocationController
	Details      *DetailsController
	Confirmation *ConfirmationController

	log       *logger.Logger
	clock     func() time.Time
	destroyed bool
}

// NewFlow creates a flow with every stage at its default value.
func NewFlow(deps FlowDeps) *Flow {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	val := deps.Validator
	if val == nil {
		val = validator.New()
	}
	log := deps.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Flow{
		Contact:      NewContactController(val),
		Location:     NewLocationController(val, clock),
		Details:      NewDetailsController(deps.Previews, clock, deps.NewID),
		Confirmation: NewConfirmationController(),
		log:          log,
		clock:        clock,
	}
}

// Stage returns the controller for st.
func (f *Flow) Stage(st domain.Stage) (StageController, error) {
	switch st {
	case domain.StageContact:
		return f.Contact, nil
	case domain.StageLocation:
		return f.Location, nil
	case domain.StageDetails:
		return f.Details, nil
	case domain.StageConfirmation:
		return f.Confirmation, nil
	}
	return nil, apperr.NotFound(fmt.Sprintf("unknown stage %q", st))
}

func (f *Flow) stages() []StageController {
	return []StageController{f.Contact, f.Location, f.Details, f.Confirmation}
}

// CommitStage runs validate-and-commit on one stage.
func (f *Flow) CommitStage(st domain.Stage) (bool, domain.ErrorMap, error) {
	c, err := f.Stage(st)
	if err != nil {
		return false, nil, err
	}
	valid := c.ValidateAndCommit()
	errs := c.Errors()
	f.log.StageCommitted(string(st), valid, len(errs))
	return valid, errs, nil
}

// CommitAll commits every stage (none is skipped) and returns the error
// maps of the invalid ones.
func (f *Flow) CommitAll() (bool, map[domain.Stage]domain.ErrorMap) {
	invalid := make(map[domain.Stage]domain.ErrorMap)
	for _, c := range f.stages() {
		valid := c.ValidateAndCommit()
		errs := c.Errors()
		f.log.StageCommitted(string(c.Stage()), valid, len(errs))
		if !valid {
			invalid[c.Stage()] = errs
		}
	}
	return len(invalid) == 0, invalid
}

// Valid reports overall validity without making any error visible.
func (f *Flow) Valid() bool {
	for _, c := range f.stages() {
		if !c.Validate().Valid() {
			return false
		}
	}
	return true
}

// HasFormData reports whether any stage holds input worth keeping.
func (f *Flow) HasFormData() bool {
	for _, c := range f.stages() {
		if c.HasFormData() {
			return true
		}
	}
	return false
}

// IsDirty reports whether any stage differs from its default.
func (f *Flow) IsDirty() bool {
	for _, c := range f.stages() {
		if c.IsDirty() {
			return true
		}
	}
	return false
}

// Reset restores every stage to its default, releasing photo previews.
func (f *Flow) Reset() {
	for _, c := range f.stages() {
		c.Reset()
	}
}

// Destroy tears the flow down: every outstanding preview is released. It is
// safe to call more than once and returns the number of released previews.
func (f *Flow) Destroy() int {
	f.destroyed = true
	return f.Details.Destroy()
}

// Destroyed reports whether Destroy ran.
func (f *Flow) Destroyed() bool { return f.destroyed }

// Submission assembles the aggregate from the current stage values.
func (f *Flow) Submission() domain.Submission {
	return domain.Submission{
		Contact:      f.Contact.Values(),
		Location:     f.Location.Values(),
		Details:      f.Details.Values(),
		Confirmation: f.Confirmation.Values(),
		SubmittedAt:  f.clock(),
	}
}

// Submit validates and commits all four stages and hands the aggregate to
// submitter. Terms not accepted is a hard precondition checked before
// anything else is attempted. On success the flow is destroyed.
func (f *Flow) Submit(ctx context.Context, submitter Submitter) error {
	const op = "offerte.Submit"

	if f.destroyed {
		return apperr.Gone("intake flow is no longer active").WithOp(op)
	}
	switch f.Confirmation.Status() {
	case domain.SubmissionSubmitting:
		return apperr.Conflict("submission already in progress").WithOp(op)
	case domain.SubmissionSubmitted:
		return apperr.Conflict("quote request already submitted").WithOp(op)
	}

	if !f.Confirmation.TermsAccepted() {
		f.Confirmation.ValidateAndCommit()
		return apperr.Precondition(domain.MsgTermsRequired).WithOp(op).
			WithDetails(map[domain.Stage]domain.ErrorMap{domain.StageConfirmation: f.Confirmation.Errors()})
	}

	if valid, invalid := f.CommitAll(); !valid {
		return apperr.Validation("one or more stages are invalid").WithOp(op).WithDetails(invalid)
	}

	f.setSubmitting(true)
	f.Confirmation.setStatus(domain.SubmissionSubmitting)
	err := submitter.Submit(ctx, f.Submission())
	f.setSubmitting(false)

	if err != nil {
		f.Confirmation.setStatus(domain.SubmissionFailed)
		f.log.WithContext(ctx).Error("quote submission failed", "error", err)
		return apperr.Wrap(apperr.KindInternal, "submission failed", err).WithOp(op)
	}

	f.Confirmation.setStatus(domain.SubmissionSubmitted)
	released := f.Destroy()
	f.log.WithContext(ctx).Info("quote request submitted", "released_previews", released)
	return nil
}

func (f *Flow) setSubmitting(v bool) {
	for _, c := range f.stages() {
		c.SetSubmitting(v)
	}
}
