package ir

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// TableName derives the default table of a message: the NFC-normalized
// name in snake_case. UserProfile becomes user_profile and HTTPRequest
// becomes http_request.
func TableName(messageName string) string {
	runes := []rune(norm.NFC.String(messageName))
	var sb strings.Builder
	for i, r := range runes {
		if r == '.' || r == '-' || unicode.IsSpace(r) {
			r = '_'
		}
		if i > 0 && unicode.IsUpper(r) && wordBoundary(runes, i) {
			sb.WriteByte('_')
		}
		sb.WriteRune(r)
	}
	return lower.String(sb.String())
}

// wordBoundary reports whether the upper-case rune at i starts a new word.
func wordBoundary(runes []rune, i int) bool {
	prev := runes[i-1]
	if prev == '_' {
		return false
	}
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	// An acronym ends where an upper-case run meets a lower-case rune.
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
