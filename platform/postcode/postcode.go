// Package postcode provides Dutch postal code utilities.
// This is part of the platform layer and contains no business logic.
package postcode

import (
	"regexp"
	"strings"
	"unicode"
)

var dutchPattern = regexp.MustCompile(`^[1-9][0-9]{3}[A-Z]{2}$`)

// Normalize removes all whitespace and upper-cases letters. It is idempotent.
func Normalize(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Valid reports whether input matches the Dutch 4-digit + 2-letter format.
// Matching is case-insensitive because the input is normalized first.
func Valid(input string) bool {
	return dutchPattern.MatchString(Normalize(input))
}
