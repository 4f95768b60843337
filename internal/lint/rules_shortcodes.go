package lint

import (
	"fmt"

	"git.home.luguber.info/inful/contentkit/internal/content"
	"git.home.luguber.info/inful/contentkit/internal/markdown"
)

// ShortcodeRule checks that shortcode invocations in a page body name
// templates the site actually ships. Hugo fails the whole build on an
// unknown shortcode, so catching typos here is much cheaper.
type ShortcodeRule struct{}

func (r *ShortcodeRule) Name() string { return "shortcodes-known" }

func (r *ShortcodeRule) AppliesTo(doc *content.Document) bool {
	return !doc.Rendered && doc.MetaErr == nil
}

// Hugo built-ins plus the templates the academic theme ships.
var knownShortcodes = map[string]struct{}{
	"figure": {}, "gist": {}, "highlight": {}, "instagram": {}, "param": {},
	"ref": {}, "relref": {}, "tweet": {}, "vimeo": {}, "youtube": {},
	"alert": {}, "audio": {}, "callout": {}, "chart": {}, "cite": {},
	"diagram": {}, "gallery": {}, "icon": {}, "math": {}, "mention": {},
	"spoiler": {}, "staticref": {}, "toc": {}, "video": {},
}

func (r *ShortcodeRule) Check(doc *content.Document) []Issue {
	var issues []Issue
	for _, sc := range markdown.ExtractShortcodes(doc.Body) {
		if _, ok := knownShortcodes[sc.Name]; ok {
			continue
		}
		issues = append(issues, Issue{
			FilePath:    doc.RelPath,
			Severity:    SeverityWarning,
			Rule:        r.Name(),
			Message:     fmt.Sprintf("unknown shortcode %q", sc.Name),
			Explanation: fmt.Sprintf("rendering fails when no template exists for %s", sc.Raw),
			Fix:         "Use a shortcode the theme ships, or add its template to the site",
		})
	}
	return issues
}
