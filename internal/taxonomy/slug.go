package taxonomy

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// Slug normalizes a taxonomy term to its URL form: Unicode-normalized,
// lowercased, with separators collapsed to single hyphens and combining
// marks stripped ("Émilie's Topic" → "emilies-topic").
func Slug(term string) string {
	decomposed := norm.NFD.String(lower.String(strings.TrimSpace(term)))

	var b strings.Builder
	lastHyphen := false
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark from NFD decomposition
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '/':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
