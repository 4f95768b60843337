package lint

import (
	"errors"
	"fmt"

	"git.home.luguber.info/inful/contentkit/internal/content"
	"git.home.luguber.info/inful/contentkit/internal/frontmatter"
)

// FrontMatterValidRule checks that the metadata block parses at all.
type FrontMatterValidRule struct{}

func (r *FrontMatterValidRule) Name() string { return "frontmatter-valid" }

func (r *FrontMatterValidRule) AppliesTo(doc *content.Document) bool {
	return !doc.Rendered
}

func (r *FrontMatterValidRule) Check(doc *content.Document) []Issue {
	if doc.MetaErr != nil {
		msg := "front matter does not parse"
		if errors.Is(doc.MetaErr, frontmatter.ErrMissingClosingDelimiter) {
			msg = "front matter block is not closed"
		}
		return []Issue{{
			FilePath:    doc.RelPath,
			Severity:    SeverityError,
			Rule:        r.Name(),
			Message:     msg,
			Explanation: doc.MetaErr.Error(),
			Fix:         "Repair the YAML between the --- delimiters",
		}}
	}

	if !doc.HasMeta {
		return []Issue{{
			FilePath: doc.RelPath,
			Severity: SeverityWarning,
			Rule:     r.Name(),
			Message:  "document has no front matter",
			Fix:      "Add a --- delimited metadata block with at least a title",
		}}
	}
	return nil
}

// DuplicateKeysRule reports keys defined more than once at the same mapping
// level of the metadata block.
type DuplicateKeysRule struct{}

func (r *DuplicateKeysRule) Name() string { return "frontmatter-duplicate-keys" }

func (r *DuplicateKeysRule) AppliesTo(doc *content.Document) bool {
	return !doc.Rendered && doc.HasMeta && doc.MetaErr == nil
}

func (r *DuplicateKeysRule) Check(doc *content.Document) []Issue {
	meta, _, _, _, err := frontmatter.Split(doc.Raw)
	if err != nil {
		return nil
	}
	dups, err := frontmatter.FindDuplicateKeys(meta)
	if err != nil {
		return nil
	}

	var issues []Issue
	for _, d := range dups {
		issues = append(issues, Issue{
			FilePath:    doc.RelPath,
			Severity:    SeverityError,
			Rule:        r.Name(),
			Message:     fmt.Sprintf("duplicate front matter key %q", d.Key),
			Explanation: fmt.Sprintf("key %q is first defined on line %d and again on line %d; the renderer keeps only one of the values", d.Key, d.FirstLine, d.Line),
			Fix:         "Remove the duplicate definition",
			Line:        d.Line,
		})
	}
	return issues
}

// DateValidRule checks that date and lastmod parse and are ordered.
type DateValidRule struct{}

func (r *DateValidRule) Name() string { return "date-valid" }

func (r *DateValidRule) AppliesTo(doc *content.Document) bool {
	return !doc.Rendered && doc.MetaErr == nil
}

func (r *DateValidRule) Check(doc *content.Document) []Issue {
	var issues []Issue

	checkField := func(field, value string) {
		if value == "" {
			return
		}
		if _, err := content.ParseDate(value); err != nil {
			issues = append(issues, Issue{
				FilePath:    doc.RelPath,
				Severity:    SeverityError,
				Rule:        r.Name(),
				Message:     fmt.Sprintf("%s is not a valid timestamp: %q", field, value),
				Explanation: "accepted forms are RFC3339, 2006-01-02T15:04:05, and 2006-01-02",
				Fix:         "Rewrite the timestamp in one of the accepted forms",
			})
		}
	}

	checkField("date", doc.Fields.Date)
	checkField("lastmod", doc.Fields.Lastmod)

	if doc.Fields.Date != "" && doc.Fields.Lastmod != "" {
		d, err1 := content.ParseDate(doc.Fields.Date)
		m, err2 := content.ParseDate(doc.Fields.Lastmod)
		if err1 == nil && err2 == nil && m.Before(d) {
			issues = append(issues, Issue{
				FilePath: doc.RelPath,
				Severity: SeverityWarning,
				Rule:     r.Name(),
				Message:  "lastmod precedes date",
				Fix:      "Set lastmod to the last edit time, or drop it",
			})
		}
	}
	return issues
}

// ImageAttrsRule checks the image block on posts and project pages.
type ImageAttrsRule struct{}

func (r *ImageAttrsRule) Name() string { return "image-attrs" }

func (r *ImageAttrsRule) AppliesTo(doc *content.Document) bool {
	return !doc.Rendered && doc.MetaErr == nil && doc.Fields.Image != nil
}

var validFocalPoints = map[string]struct{}{
	"": {}, "Smart": {}, "Center": {}, "TopLeft": {}, "Top": {}, "TopRight": {},
	"Left": {}, "Right": {}, "BottomLeft": {}, "Bottom": {}, "BottomRight": {},
}

func (r *ImageAttrsRule) Check(doc *content.Document) []Issue {
	var issues []Issue
	img := doc.Fields.Image

	if _, ok := validFocalPoints[img.FocalPoint]; !ok {
		issues = append(issues, Issue{
			FilePath:    doc.RelPath,
			Severity:    SeverityError,
			Rule:        r.Name(),
			Message:     fmt.Sprintf("unknown image focal_point %q", img.FocalPoint),
			Explanation: "the theme only recognizes Smart, Center, and the eight compass positions",
			Fix:         "Use one of the recognized focal_point values",
		})
	}

	if !img.PreviewOnly && img.Caption == "" {
		issues = append(issues, Issue{
			FilePath: doc.RelPath,
			Severity: SeverityWarning,
			Rule:     r.Name(),
			Message:  "page image has no caption",
			Fix:      "Add image.caption, or set preview_only: true",
		})
	}
	return issues
}
