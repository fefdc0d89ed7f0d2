// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"offerte_backend/platform/phone"
	"offerte_backend/platform/postcode"

	"github.com/go-playground/validator/v10"
)

const (
	// TagDutchPhone validates an already normalized Dutch phone number.
	TagDutchPhone = "nl_phone"
	// TagDutchPostcode validates a Dutch postal code (case-insensitive).
	TagDutchPostcode = "nl_postcode"
)

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance with the Dutch address and phone
// rules registered.
func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation(TagDutchPhone, func(fl validator.FieldLevel) bool {
		return phone.IsDutch(fl.Field().String())
	})
	_ = v.RegisterValidation(TagDutchPostcode, func(fl validator.FieldLevel) bool {
		return postcode.Valid(fl.Field().String())
	})
	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

// FieldErrors flattens validator.ValidationErrors into field -> failed tag.
// Returns nil when err is not a validation error.
func FieldErrors(err error) map[string]string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	details := make(map[string]string, len(errs))
	for _, e := range errs {
		details[e.Field()] = e.Tag()
	}
	return details
}
