package lint

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/contentkit/internal/content"
	"git.home.luguber.info/inful/contentkit/internal/logfields"
)

// Linter runs document and site rules over a scanned content tree.
type Linter struct {
	cfg       *Config
	rules     []Rule
	siteRules []SiteRule
}

// NewLinter creates a linter with the default rule set.
func NewLinter(cfg *Config) *Linter {
	if cfg == nil {
		cfg = &Config{Format: "text"}
	}

	return &Linter{
		cfg: cfg,
		rules: []Rule{
			&FrontMatterValidRule{},
			&DuplicateKeysRule{},
			&DateValidRule{},
			&ImageAttrsRule{},
			&ShortcodeRule{},
			&FilenameRule{},
		},
		siteRules: []SiteRule{
			&AuthorsResolveRule{},
			&ProfileFieldsRule{},
			&LinksResolveRule{},
		},
	}
}

// Run lints every document of the site.
func (l *Linter) Run(site *content.Site) *Result {
	start := time.Now()
	result := &Result{
		ReportID:   uuid.NewString(),
		Issues:     []Issue{},
		FilesTotal: len(site.Documents),
	}

	for _, doc := range site.Documents {
		for _, rule := range l.rules {
			if !rule.AppliesTo(doc) {
				continue
			}
			l.collect(result, rule.Check(doc))
		}
	}

	for _, rule := range l.siteRules {
		l.collect(result, rule.CheckSite(site))
	}

	slog.Debug("lint run finished",
		logfields.ReportID(result.ReportID),
		logfields.Count(len(result.Issues)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000.0))

	return result
}

func (l *Linter) collect(result *Result, issues []Issue) {
	for _, issue := range issues {
		if l.cfg.Quiet && issue.Severity != SeverityError {
			continue
		}
		result.Issues = append(result.Issues, issue)
	}
}
