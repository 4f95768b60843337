package markdown

import (
	"strings"
	"unicode"
)

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

type Link struct {
	Kind        LinkKind
	Destination string
}

// Heading is one section heading of a document body.
type Heading struct {
	Level  int
	Text   string
	Anchor string
}

// AnchorID derives the URL fragment the site generator assigns a heading:
// lowercase, spaces collapsed to hyphens, punctuation dropped.
func AnchorID(text string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.TrimSpace(strings.ToLower(text)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
