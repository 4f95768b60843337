package markdown

import (
	"regexp"
	"strings"
)

// Shortcode is one Hugo shortcode invocation found in a body.
type Shortcode struct {
	Name   string
	Markup bool // {{% %}} form (content re-parsed as markdown) vs {{< >}}
	Raw    string
}

// Shortcodes are template-level syntax; goldmark sees them as plain text, so
// a scan over the raw body is the only way to find them.
var shortcodeRe = regexp.MustCompile(`\{\{([<%])\s*/?\s*([a-zA-Z0-9_-]+)\b[^}]*?[>%]\}\}`)

// ExtractShortcodes finds Hugo shortcode invocations in a markdown body.
// Closing forms ({{< /name >}}) are folded into the opening invocation.
func ExtractShortcodes(body []byte) []Shortcode {
	matches := shortcodeRe.FindAllStringSubmatch(string(body), -1)
	var out []Shortcode
	for _, m := range matches {
		if strings.Contains(m[0], "/"+m[2]) {
			continue // closing tag
		}
		out = append(out, Shortcode{
			Name:   m[2],
			Markup: m[1] == "%",
			Raw:    m[0],
		})
	}
	return out
}
