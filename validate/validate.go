// Package validate holds pure input checks shared by the request handlers.
// File: validate/validate.go
package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// IsValidID reports whether s is a canonical 36-character UUID.
// uuid.Parse also accepts URN and braced forms, so the length is pinned.
func IsValidID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// ValidScore reports whether n is an interview score in the allowed range.
func ValidScore(n int) bool { return n >= 1 && n <= 10 }

// Sanitize trims surrounding whitespace and caps the string at max runes.
// The cut lands on a rune boundary so multibyte input stays valid UTF-8.
func Sanitize(s string, max int) string {
	s = strings.TrimSpace(s)
	if max > 0 && utf8.RuneCountInString(s) > max {
		s = string([]rune(s)[:max])
	}
	return s
}

// IsHTTPSURL reports whether s is acceptable as an external link:
// empty (cleared) or an https:// URL.
func IsHTTPSURL(s string) bool {
	return s == "" || strings.HasPrefix(s, "https://")
}
