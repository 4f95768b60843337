package lint

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"git.home.luguber.info/inful/contentkit/internal/content"
	"git.home.luguber.info/inful/contentkit/internal/frontmatter"
	"git.home.luguber.info/inful/contentkit/internal/logfields"
)

// FixResult records what a fix pass changed (or would change).
type FixResult struct {
	// Applied maps root-relative paths to the fixes applied to them.
	Applied map[string][]string
	// DryRun reports whether files were actually rewritten.
	DryRun bool
}

// Fixer applies the automatic fixes: lowercasing taxonomy terms and
// canonicalizing timestamp forms. Everything it touches is metadata-only;
// document bodies are never rewritten.
type Fixer struct {
	cfg *Config
}

// NewFixer creates a fixer honoring cfg.DryRun.
func NewFixer(cfg *Config) *Fixer {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Fixer{cfg: cfg}
}

// Apply runs the fix pass over every markup document of the site.
func (f *Fixer) Apply(site *content.Site) (*FixResult, error) {
	result := &FixResult{
		Applied: make(map[string][]string),
		DryRun:  f.cfg.DryRun,
	}

	for _, doc := range site.Documents {
		if doc.Rendered || !doc.HasMeta || doc.MetaErr != nil {
			continue
		}

		fixes := fixDocument(doc)
		if len(fixes) == 0 {
			continue
		}
		result.Applied[doc.RelPath] = fixes

		if f.cfg.DryRun {
			continue
		}
		if err := rewrite(doc); err != nil {
			return nil, fmt.Errorf("rewrite %s: %w", doc.RelPath, err)
		}
		slog.Info("applied fixes",
			logfields.Document(doc.RelPath),
			logfields.Count(len(fixes)))
	}
	return result, nil
}

// fixDocument mutates doc.Meta in place and describes each change.
func fixDocument(doc *content.Document) []string {
	var fixes []string

	for _, key := range []string{"tags", "categories"} {
		if changed := lowercaseTerms(doc.Meta, key); changed > 0 {
			fixes = append(fixes, fmt.Sprintf("lowercased %d %s term(s)", changed, key))
		}
	}

	for _, key := range []string{"date", "lastmod"} {
		if canonical, ok := canonicalDate(doc.Meta[key]); ok {
			doc.Meta[key] = canonical
			fixes = append(fixes, fmt.Sprintf("canonicalized %s to %s", key, canonical))
		}
	}
	return fixes
}

func lowercaseTerms(meta map[string]any, key string) int {
	raw, ok := meta[key]
	if !ok {
		return 0
	}

	changed := 0
	switch terms := raw.(type) {
	case string:
		if lower := strings.ToLower(terms); lower != terms {
			meta[key] = lower
			changed++
		}
	case []any:
		for i, term := range terms {
			s, ok := term.(string)
			if !ok {
				continue
			}
			if lower := strings.ToLower(s); lower != s {
				terms[i] = lower
				changed++
			}
		}
	}
	return changed
}

// canonicalDate rewrites a parseable timestamp whose time-of-day carries no
// information (midnight, no offset) to the date-only form. Anything else is
// left untouched.
func canonicalDate(raw any) (string, bool) {
	value, ok := raw.(string)
	if !ok || value == "" {
		return "", false
	}

	t, err := content.ParseDate(value)
	if err != nil {
		return "", false
	}

	dateOnly := t.Format("2006-01-02")
	if value == dateOnly {
		return "", false
	}
	h, m, s := t.Clock()
	if h != 0 || m != 0 || s != 0 {
		return "", false
	}
	if _, offset := t.Zone(); offset != 0 && t.Location() != time.UTC {
		return "", false
	}
	return dateOnly, true
}

// rewrite serializes the fixed metadata and writes the document back with
// its original newline style.
func rewrite(doc *content.Document) error {
	meta, err := frontmatter.Serialize(doc.Meta, doc.Style)
	if err != nil {
		return err
	}
	out := frontmatter.Join(meta, doc.Body, true, doc.Style)
	return os.WriteFile(doc.Path, out, 0o644)
}
