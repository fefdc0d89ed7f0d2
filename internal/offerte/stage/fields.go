package stage

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"offerte_backend/platform/apperr"
)

// dateLayout is the date-only wire format used by date inputs.
const dateLayout = "2006-01-02"

func typeError(name, want string, raw any) error {
	return apperr.Validation(fmt.Sprintf("field %q expects %s", name, want)).
		WithDetails(map[string]string{"field": name, "got": fmt.Sprintf("%T", raw)})
}

// String coerces raw into a string. nil yields "".
func String(name string, raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case *string:
		if v == nil {
			return "", nil
		}
		return *v, nil
	default:
		return "", typeError(name, "a string", raw)
	}
}

// Bool coerces raw into a bool. Strings "true"/"false" are accepted.
func Bool(name string, raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, typeError(name, "a boolean", raw)
		}
		return b, nil
	default:
		return false, typeError(name, "a boolean", raw)
	}
}

// OptionalBool coerces raw into a *bool. nil clears the value.
func OptionalBool(name string, raw any) (*bool, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case *bool:
		if v == nil {
			return nil, nil
		}
		b := *v
		return &b, nil
	}
	b, err := Bool(name, raw)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// OptionalInt coerces raw into an *int. nil and "" clear the value.
func OptionalInt(name string, raw any) (*int, error) {
	var n int
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		if v != math.Trunc(v) {
			return nil, typeError(name, "a whole number", raw)
		}
		n = int(v)
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return nil, typeError(name, "a whole number", raw)
		}
		n = int(parsed)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, typeError(name, "a whole number", raw)
		}
		n = parsed
	case *int:
		if v == nil {
			return nil, nil
		}
		n = *v
	default:
		return nil, typeError(name, "a whole number", raw)
	}
	return &n, nil
}

// OptionalDate coerces raw into a *time.Time. Strings may be a date
// (2006-01-02) or an RFC 3339 timestamp. nil and "" clear the value.
func OptionalDate(name string, raw any) (*time.Time, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &v, nil
	case *time.Time:
		if v == nil {
			return nil, nil
		}
		t := *v
		return &t, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		if t, err := time.Parse(dateLayout, trimmed); err == nil {
			return &t, nil
		}
		if t, err := time.Parse(time.RFC3339, trimmed); err == nil {
			return &t, nil
		}
		return nil, typeError(name, "a date (YYYY-MM-DD)", raw)
	default:
		return nil, typeError(name, "a date (YYYY-MM-DD)", raw)
	}
}

// StringSet coerces raw into a sorted, de-duplicated slice of strings.
func StringSet(name string, raw any) ([]string, error) {
	var items []string
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []string:
		items = v
	case []any:
		items = make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, typeError(name, "a list of strings", raw)
			}
			items = append(items, s)
		}
	default:
		return nil, typeError(name, "a list of strings", raw)
	}

	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}

// TextField builds a setter for a string field. transform may be nil.
func TextField[T any](name string, ptr func(*T) *string, transform func(string) string) Field[T] {
	return Field[T]{
		Name: name,
		Set: func(values *T, raw any) error {
			s, err := String(name, raw)
			if err != nil {
				return err
			}
			if transform != nil {
				s = transform(s)
			}
			*ptr(values) = s
			return nil
		},
	}
}

// EnumField builds a setter for a closed enumeration. "" and nil unset the
// field when allowEmpty is true; any other value must satisfy valid.
func EnumField[T any, E ~string](name string, ptr func(*T) *E, valid func(E) bool, allowEmpty bool) Field[T] {
	return Field[T]{
		Name: name,
		Set: func(values *T, raw any) error {
			s, err := String(name, raw)
			if err != nil {
				return err
			}
			e := E(strings.TrimSpace(s))
			if e == "" && allowEmpty {
				*ptr(values) = e
				return nil
			}
			if !valid(e) {
				return apperr.Validation(fmt.Sprintf("invalid value %q for field %q", s, name)).
					WithDetails(map[string]string{"field": name})
			}
			*ptr(values) = e
			return nil
		},
	}
}

// OptionalBoolField builds a setter for a tri-state boolean.
func OptionalBoolField[T any](name string, ptr func(*T) **bool) Field[T] {
	return Field[T]{
		Name: name,
		Set: func(values *T, raw any) error {
			b, err := OptionalBool(name, raw)
			if err != nil {
				return err
			}
			*ptr(values) = b
			return nil
		},
	}
}

// IsBlank reports whether s is empty after trimming.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
