package service

import (
	"testing"

	"offerte_backend/internal/offerte/domain"
	"offerte_backend/platform/apperr"
	"offerte_backend/platform/validator"
)

func TestContactValidation(t *testing.T) {
	tests := []struct {
		name   string
		input  map[string]any
		errors domain.ErrorMap
	}{
		{
			name:   "empty",
			input:  map[string]any{},
			errors: domain.ErrorMap{domain.FieldName: domain.MsgNameRequired, domain.FieldEmail: domain.MsgEmailRequired},
		},
		{
			name:   "valid without phone",
			input:  map[string]any{"name": "Jan de Vries", "email": "jan@example.com"},
			errors: domain.ErrorMap{},
		},
		{
			name:   "short name",
			input:  map[string]any{"name": " J ", "email": "jan@example.com"},
			errors: domain.ErrorMap{domain.FieldName: domain.MsgNameTooShort},
		},
		{
			name:   "email without tld",
			input:  map[string]any{"name": "Jan", "email": "jan@example"},
			errors: domain.ErrorMap{domain.FieldEmail: domain.MsgEmailInvalid},
		},
		{
			name:   "dutch mobile",
			input:  map[string]any{"name": "Jan", "email": "jan@example.com", "phone": "06 1234 5678"},
			errors: domain.ErrorMap{},
		},
		{
			name:   "foreign phone",
			input:  map[string]any{"name": "Jan", "email": "jan@example.com", "phone": "+4915112345678"},
			errors: domain.ErrorMap{domain.FieldPhone: domain.MsgPhoneInvalid},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContactController(validator.New())
			if err := c.MergeFields(tt.input); err != nil {
				t.Fatalf("MergeFields: %v", err)
			}
			valid := c.ValidateAndCommit()
			got := c.Errors()
			if valid != (len(tt.errors) == 0) {
				t.Errorf("valid = %v, errors %v", valid, got)
			}
			if len(got) != len(tt.errors) {
				t.Fatalf("errors = %v, want %v", got, tt.errors)
			}
			for k, v := range tt.errors {
				if got[k] != v {
					t.Errorf("errors[%s] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestContactPhoneIsNormalizedOnInput(t *testing.T) {
	c := NewContactController(validator.New())
	if err := c.UpdateField(domain.FieldPhone, "0612345678"); err != nil {
		t.Fatal(err)
	}
	if got := c.Values().Phone; got != "+31612345678" {
		t.Errorf("phone = %q", got)
	}
	if got := c.Summary().Phone; got != "06 12345678" {
		t.Errorf("summary phone = %q", got)
	}
}

func TestContactUpdateClearsOnlyThatFieldError(t *testing.T) {
	c := NewContactController(validator.New())
	c.ValidateAndCommit()

	if err := c.UpdateField(domain.FieldName, "J"); err != nil {
		t.Fatal(err)
	}
	errs := c.Errors()
	if _, ok := errs[domain.FieldName]; ok {
		t.Errorf("name error should be cleared, got %v", errs)
	}
	if errs[domain.FieldEmail] != domain.MsgEmailRequired {
		t.Errorf("email error should persist, got %v", errs)
	}
}

func TestContactRejectsUnknownCustomerType(t *testing.T) {
	c := NewContactController(validator.New())
	err := c.UpdateField(domain.FieldCustomerType, "government")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := c.Values().CustomerType; got != domain.CustomerIndividual {
		t.Errorf("customer type changed to %q", got)
	}
}

func TestContactHasFormData(t *testing.T) {
	c := NewContactController(validator.New())
	if c.HasFormData() || c.IsDirty() {
		t.Fatal("fresh controller should be empty")
	}
	_ = c.UpdateField(domain.FieldName, "   ")
	if c.HasFormData() {
		t.Error("whitespace-only name is not form data")
	}
	if !c.IsDirty() {
		t.Error("whitespace-only name still differs from the default")
	}
	c.Reset()
	if c.IsDirty() {
		t.Error("reset should restore defaults")
	}
}
