package validator

import "testing"

func TestCustomTags(t *testing.T) {
	val := New()

	if err := val.Var("+31612345678", TagDutchPhone); err != nil {
		t.Fatalf("expected valid phone, got %v", err)
	}
	if err := val.Var("+4420794609", TagDutchPhone); err == nil {
		t.Fatal("expected foreign number to fail nl_phone")
	}
	if err := val.Var("1234ab", TagDutchPostcode); err != nil {
		t.Fatalf("expected valid postcode, got %v", err)
	}
	if err := val.Var("12AB34", TagDutchPostcode); err == nil {
		t.Fatal("expected 12AB34 to fail nl_postcode")
	}
}

func TestFieldErrors(t *testing.T) {
	type req struct {
		Value string `validate:"required"`
	}
	val := New()

	details := FieldErrors(val.Struct(req{}))
	if details["Value"] != "required" {
		t.Fatalf("expected Value=required, got %v", details)
	}
	if FieldErrors(nil) != nil {
		t.Fatal("expected nil details for nil error")
	}
}
