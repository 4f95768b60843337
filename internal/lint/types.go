package lint

import (
	"git.home.luguber.info/inful/contentkit/internal/content"
)

// Severity indicates the importance level of a linting issue.
type Severity int

const (
	// SeverityInfo indicates informational messages.
	SeverityInfo Severity = iota
	// SeverityWarning indicates issues that should be fixed but don't block.
	SeverityWarning
	// SeverityError indicates issues the site generator will choke on or
	// that break the published site.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Issue represents a single linting problem found in a document.
type Issue struct {
	FilePath    string   `json:"file"`               // Root-relative path to the document
	Severity    Severity `json:"severity"`
	Rule        string   `json:"rule"`               // Rule identifier (e.g., "authors-resolve")
	Message     string   `json:"message"`            // Brief description of the issue
	Explanation string   `json:"explanation,omitempty"` // Detailed explanation with context
	Fix         string   `json:"fix,omitempty"`      // Suggested fix
	Line        int      `json:"line,omitempty"`     // Line number (0 if file-level issue)
}

// Result contains all issues found during a lint run.
type Result struct {
	ReportID   string  `json:"report_id"`
	Issues     []Issue `json:"issues"`
	FilesTotal int     `json:"files_total"`
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if any warning-level issues exist.
func (r *Result) HasWarnings() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// Rule validates a single loaded document.
type Rule interface {
	// Name returns the unique identifier for this rule.
	Name() string

	// AppliesTo reports whether this rule should run for the document.
	AppliesTo(doc *content.Document) bool

	// Check validates a document and returns any issues found.
	Check(doc *content.Document) []Issue
}

// SiteRule validates cross-document properties over the whole site.
type SiteRule interface {
	// Name returns the unique identifier for this rule.
	Name() string

	// CheckSite validates the scanned site and returns any issues found.
	CheckSite(site *content.Site) []Issue
}

// Config contains configuration for the linter.
type Config struct {
	// Quiet suppresses warnings and infos, only showing errors.
	Quiet bool

	// Format specifies output format (text, json).
	Format string

	// Fix enables automatic fixing of issues where possible.
	Fix bool

	// DryRun shows what would be fixed without applying changes.
	DryRun bool
}
