package lint

import (
	"path/filepath"
	"strings"
	"unicode"

	"git.home.luguber.info/inful/contentkit/internal/content"
)

// FilenameRule validates that content filenames follow the conventions the
// site generator turns into stable URLs.
type FilenameRule struct{}

func (r *FilenameRule) Name() string { return "filename-conventions" }

func (r *FilenameRule) AppliesTo(doc *content.Document) bool { return true }

func (r *FilenameRule) Check(doc *content.Document) []Issue {
	filename := filepath.Base(doc.RelPath)
	var issues []Issue

	if hasUppercase(filename) {
		issues = append(issues, Issue{
			FilePath: doc.RelPath,
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  "filename contains uppercase letters",
			Explanation: "filenames become URL slugs; case sensitivity differs between the " +
				"publishing host and local filesystems, so mixed case produces dead links",
			Fix: "Rename to " + strings.ToLower(filename),
		})
	}

	if strings.ContainsAny(filename, " \t") {
		issues = append(issues, Issue{
			FilePath: doc.RelPath,
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  "filename contains whitespace",
			Fix:      "Rename using hyphens instead of spaces",
		})
	}

	if hasDoubleExtension(filename) {
		issues = append(issues, Issue{
			FilePath: doc.RelPath,
			Severity: SeverityWarning,
			Rule:     r.Name(),
			Message:  "filename has a double extension",
			Explanation: "patterns like .md.backup or .html.old are usually stray editor " +
				"artifacts the generator will still try to publish",
			Fix: "Remove backup files from the content tree or add them to .gitignore",
		})
	}
	return issues
}

func hasUppercase(name string) bool {
	for _, r := range name {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func hasDoubleExtension(name string) bool {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Ext(base) != ""
}
