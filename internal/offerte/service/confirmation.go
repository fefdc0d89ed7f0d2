package service

import (
	"offerte_backend/internal/offerte/domain"
	"offerte_backend/internal/offerte/stage"
	"offerte_backend/platform/sanitize"
)

// ConfirmationController drives stage 4 and carries the aggregated
// submission status of the flow.
type ConfirmationController struct {
	*stage.Controller[domain.ConfirmationData]
	status domain.SubmissionStatus
}

// NewConfirmationController creates a confirmation stage at its default value.
func NewConfirmationController() *ConfirmationController {
	return &ConfirmationController{
		status: domain.SubmissionIdle,
		Controller: stage.New(stage.Schema[domain.ConfirmationData]{
			Stage:   domain.StageConfirmation,
			Default: domain.DefaultConfirmationData,
			Fields: []stage.Field[domain.ConfirmationData]{
				{Name: domain.FieldTermsAccepted, Set: func(d *domain.ConfirmationData, raw any) error {
					accepted, err := stage.Bool(domain.FieldTermsAccepted, raw)
					if err != nil {
						return err
					}
					d.TermsAccepted = accepted
					return nil
				}},
				stage.OptionalBoolField(domain.FieldNewsletterOptIn, func(d *domain.ConfirmationData) **bool { return &d.NewsletterOptIn }),
				stage.OptionalBoolField(domain.FieldMarketingOptIn, func(d *domain.ConfirmationData) **bool { return &d.MarketingOptIn }),
				stage.OptionalBoolField(domain.FieldPrivacyAcknowledged, func(d *domain.ConfirmationData) **bool { return &d.PrivacyAcknowledged }),
				stage.EnumField(domain.FieldReferralSource,
					func(d *domain.ConfirmationData) *domain.ReferralSource { return &d.ReferralSource },
					domain.ReferralSource.Valid, true),
				stage.TextField(domain.FieldReferralSourceOther, func(d *domain.ConfirmationData) *string { return &d.ReferralSourceOther }, sanitize.Text),
			},
			Validate: func(d domain.ConfirmationData) domain.ErrorMap {
				errs := domain.ErrorMap{}
				if !d.TermsAccepted {
					errs[domain.FieldTermsAccepted] = domain.MsgTermsRequired
				}
				return errs
			},
			Dirty: func(d domain.ConfirmationData) bool {
				return d.TermsAccepted ||
					d.NewsletterOptIn != nil ||
					d.MarketingOptIn != nil ||
					d.PrivacyAcknowledged != nil ||
					d.ReferralSource != "" ||
					d.ReferralSourceOther != ""
			},
			HasData: func(d domain.ConfirmationData) bool {
				return d.TermsAccepted ||
					d.NewsletterOptIn != nil ||
					d.MarketingOptIn != nil ||
					d.PrivacyAcknowledged != nil ||
					d.ReferralSource != "" ||
					!stage.IsBlank(d.ReferralSourceOther)
			},
			Clone: func(d domain.ConfirmationData) domain.ConfirmationData {
				d.NewsletterOptIn = cloneBool(d.NewsletterOptIn)
				d.MarketingOptIn = cloneBool(d.MarketingOptIn)
				d.PrivacyAcknowledged = cloneBool(d.PrivacyAcknowledged)
				return d
			},
		}),
	}
}

// TermsAccepted reports the hard submit precondition.
func (c *ConfirmationController) TermsAccepted() bool {
	return c.Values().TermsAccepted
}

// Status returns the aggregated submission status.
func (c *ConfirmationController) Status() domain.SubmissionStatus { return c.status }

func (c *ConfirmationController) setStatus(s domain.SubmissionStatus) { c.status = s }

// Reset restores the defaults and the idle submission status.
func (c *ConfirmationController) Reset() {
	c.Controller.Reset()
	c.status = domain.SubmissionIdle
}
