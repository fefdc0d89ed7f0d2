// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const (
	defaultRegion    = "NL"
	dutchCountryCode = 31
)

// dutchPattern accepts national (0XXXXXXXXX) and international (+31XXXXXXXXX) forms.
var dutchPattern = regexp.MustCompile(`^(\+31|0)[1-9][0-9]{8}$`)

// Normalize strips everything except digits and a leading '+', then rewrites the
// Dutch prefixes "0031" to "+31" and "06" to "+316". Other prefixes are kept.
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(trimmed))
	for i, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case strings.HasPrefix(digits, "0031"):
		return "+31" + digits[4:]
	case strings.HasPrefix(digits, "06"):
		return "+316" + digits[2:]
	default:
		return digits
	}
}

// IsDutch reports whether an already normalized number is a Dutch national or
// international number.
func IsDutch(normalized string) bool {
	if !dutchPattern.MatchString(normalized) {
		return false
	}
	number, err := phonenumbers.Parse(normalized, defaultRegion)
	if err != nil {
		return false
	}
	return number.GetCountryCode() == dutchCountryCode
}

// FormatNational renders a number in Dutch national notation for display.
// If parsing fails, it returns the input unchanged.
func FormatNational(input string) string {
	if input == "" {
		return ""
	}
	number, err := phonenumbers.Parse(input, defaultRegion)
	if err != nil {
		return input
	}
	return phonenumbers.Format(number, phonenumbers.NATIONAL)
}
