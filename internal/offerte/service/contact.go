// Package service implements the four intake stage controllers, the photo
// lifecycle manager and the flow that ties them together at submit time.
package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"offerte_backend/internal/offerte/domain"
	"offerte_backend/internal/offerte/stage"
	"offerte_backend/platform/phone"
	"offerte_backend/platform/validator"
)

// emailShape requires a dot in the domain part (local@domain.tld).
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@.]+$`)

const minNameLength = 2

// ContactController drives stage 1.
type ContactController struct {
	*stage.Controller[domain.ContactInfo]
}

// NewContactController creates a contact stage at its default value.
func NewContactController(val *validator.Validator) *ContactController {
	return &ContactController{
		Controller: stage.New(stage.Schema[domain.ContactInfo]{
			Stage:   domain.StageContact,
			Default: domain.DefaultContactInfo,
			Fields: []stage.Field[domain.ContactInfo]{
				stage.EnumField(domain.FieldCustomerType,
					func(c *domain.ContactInfo) *domain.CustomerType { return &c.CustomerType },
					domain.CustomerType.Valid, false),
				stage.TextField(domain.FieldName, func(c *domain.ContactInfo) *string { return &c.Name }, nil),
				stage.TextField(domain.FieldEmail, func(c *domain.ContactInfo) *string { return &c.Email }, nil),
				stage.TextField(domain.FieldPhone, func(c *domain.ContactInfo) *string { return &c.Phone }, phone.Normalize),
			},
			Validate: func(c domain.ContactInfo) domain.ErrorMap {
				return validateContact(val, c)
			},
			Dirty: func(c domain.ContactInfo) bool {
				return c != domain.DefaultContactInfo()
			},
			HasData: func(c domain.ContactInfo) bool {
				return !stage.IsBlank(c.Name) ||
					!stage.IsBlank(c.Email) ||
					c.Phone != "" ||
					c.CustomerType != domain.DefaultContactInfo().CustomerType
			},
		}),
	}
}

func validateContact(val *validator.Validator, c domain.ContactInfo) domain.ErrorMap {
	errs := domain.ErrorMap{}

	name := strings.TrimSpace(c.Name)
	switch {
	case name == "":
		errs[domain.FieldName] = domain.MsgNameRequired
	case utf8.RuneCountInString(name) < minNameLength:
		errs[domain.FieldName] = domain.MsgNameTooShort
	}

	email := strings.TrimSpace(c.Email)
	switch {
	case email == "":
		errs[domain.FieldEmail] = domain.MsgEmailRequired
	case !emailShape.MatchString(email) || val.Var(email, "email") != nil:
		errs[domain.FieldEmail] = domain.MsgEmailInvalid
	}

	if c.Phone != "" && val.Var(c.Phone, validator.TagDutchPhone) != nil {
		errs[domain.FieldPhone] = domain.MsgPhoneInvalid
	}

	return errs
}

// ContactSummary is the review-screen rendering of stage 1.
type ContactSummary struct {
	CustomerType domain.CustomerType `json:"customerType"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Phone        string              `json:"phone,omitempty"`
}

// Summary returns trimmed values with the phone number in national notation.
func (c *ContactController) Summary() ContactSummary {
	v := c.Values()
	return ContactSummary{
		CustomerType: v.CustomerType,
		Name:         strings.TrimSpace(v.Name),
		Email:        strings.TrimSpace(v.Email),
		Phone:        phone.FormatNational(v.Phone),
	}
}
