package lint

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/contentkit/internal/authors"
	"git.home.luguber.info/inful/contentkit/internal/content"
	"git.home.luguber.info/inful/contentkit/internal/linkverify"
)

// AuthorsResolveRule checks that every referenced author identifier resolves
// to an author profile document.
type AuthorsResolveRule struct{}

func (r *AuthorsResolveRule) Name() string { return "authors-resolve" }

func (r *AuthorsResolveRule) CheckSite(site *content.Site) []Issue {
	reg := authors.NewRegistry(site)

	var issues []Issue
	for doc, ids := range authors.Unresolved(site, reg) {
		for _, id := range ids {
			issues = append(issues, Issue{
				FilePath:    doc.RelPath,
				Severity:    SeverityError,
				Rule:        r.Name(),
				Message:     fmt.Sprintf("author %q does not resolve to a profile", id),
				Explanation: fmt.Sprintf("known authors: %s", strings.Join(reg.IDs(), ", ")),
				Fix:         fmt.Sprintf("Create authors/%s/_index.md or correct the identifier", id),
			})
		}
	}
	return issues
}

// ProfileFieldsRule checks the required fields of author profiles and that
// the site declares exactly one superuser.
type ProfileFieldsRule struct{}

func (r *ProfileFieldsRule) Name() string { return "profile-required-fields" }

func (r *ProfileFieldsRule) CheckSite(site *content.Site) []Issue {
	var issues []Issue

	profiles := site.ByKind(content.KindProfile)
	for _, doc := range profiles {
		if doc.MetaErr != nil {
			continue // frontmatter-valid reports this
		}
		if doc.Fields.Title == "" {
			issues = append(issues, Issue{
				FilePath: doc.RelPath,
				Severity: SeverityError,
				Rule:     r.Name(),
				Message:  "author profile has no title (display name)",
				Fix:      "Set title to the author's display name",
			})
		}
		if doc.Fields.Role == "" {
			issues = append(issues, Issue{
				FilePath: doc.RelPath,
				Severity: SeverityWarning,
				Rule:     r.Name(),
				Message:  "author profile has no role",
				Fix:      "Set role to the author's position",
			})
		}
	}

	if len(profiles) > 0 {
		reg := authors.NewRegistry(site)
		supers := reg.Superusers()
		if len(supers) == 0 {
			issues = append(issues, Issue{
				FilePath: "authors",
				Severity: SeverityWarning,
				Rule:     r.Name(),
				Message:  "no profile declares superuser: true",
				Fix:      "Mark the site owner's profile with superuser: true",
			})
		} else if len(supers) > 1 {
			issues = append(issues, Issue{
				FilePath:    "authors",
				Severity:    SeverityError,
				Rule:        r.Name(),
				Message:     "multiple profiles declare superuser: true",
				Explanation: strings.Join(supers, ", "),
				Fix:         "Leave superuser: true on exactly one profile",
			})
		}
	}
	return issues
}

// LinksResolveRule verifies internal links, fragments, images, and
// bibliography references across the site.
type LinksResolveRule struct{}

func (r *LinksResolveRule) Name() string { return "links-resolve" }

func (r *LinksResolveRule) CheckSite(site *content.Site) []Issue {
	report, err := linkverify.Verify(site)
	if err != nil {
		return []Issue{{
			FilePath: ".",
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  "link verification failed",
			Explanation: err.Error(),
		}}
	}

	var issues []Issue
	for _, f := range report.Broken {
		dest := f.Destination
		if f.Fragment != "" {
			dest += "#" + f.Fragment
		}
		severity := SeverityError
		if f.Kind == linkverify.RefKindSelfFragment {
			severity = SeverityWarning
		}
		issues = append(issues, Issue{
			FilePath: f.Source,
			Severity: severity,
			Rule:     r.Name(),
			Message:  fmt.Sprintf("%s: %s", f.Reason, dest),
			Fix:      "Point the reference at an existing document, file, or heading",
		})
	}
	return issues
}
