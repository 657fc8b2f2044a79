// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Make normalizes a display name into a lowercase, hyphen-separated token.
// Accented letters are decomposed to their ASCII base, every run of
// non-alphanumeric characters collapses to a single hyphen, and leading or
// trailing hyphens are trimmed. Returns "" when nothing survives
// normalization; callers decide the fallback.
func Make(name string) string {
	decomposed := norm.NFKD.String(strings.ToLower(name))

	var b strings.Builder
	pendingHyphen := false

	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// Combining mark left over from decomposition; drop silently.
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}

	return b.String()
}
