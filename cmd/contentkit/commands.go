package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/contentkit/internal/authors"
	"git.home.luguber.info/inful/contentkit/internal/config"
	"git.home.luguber.info/inful/contentkit/internal/content"
	"git.home.luguber.info/inful/contentkit/internal/history"
	"git.home.luguber.info/inful/contentkit/internal/index"
	"git.home.luguber.info/inful/contentkit/internal/lint"
	"git.home.luguber.info/inful/contentkit/internal/logfields"
	"git.home.luguber.info/inful/contentkit/internal/metrics"
	"git.home.luguber.info/inful/contentkit/internal/taxonomy"
	"git.home.luguber.info/inful/contentkit/internal/watch"
)

// loadConfig reads the configuration file, letting flag overrides win.
// A missing file is fine when --root is given; defaults cover the rest.
func loadConfig(configPath, rootOverride string) (*config.Config, error) {
	cfg := config.Default()
	if _, err := os.Stat(configPath); err == nil || rootOverride == "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, err
		}
	}
	if rootOverride != "" {
		cfg.ContentRoot = rootOverride
	}
	return cfg, nil
}

func runCheck(configPath, root string) error {
	cfg, err := loadConfig(configPath, root)
	if err != nil {
		return err
	}

	site, err := content.Scan(cfg.ContentRoot)
	if err != nil {
		return err
	}

	slog.Info("Content tree scanned",
		logfields.Path(site.Root),
		logfields.ReportID(site.ScanID),
		logfields.Count(len(site.Documents)))

	byKind := map[content.Kind]int{}
	metaErrs := 0
	for _, doc := range site.Documents {
		byKind[doc.Kind]++
		if doc.MetaErr != nil {
			metaErrs++
		}
	}

	result := lint.NewLinter(&lint.Config{Quiet: true}).Run(site)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "documents\t%d\n", len(site.Documents))
	for _, kind := range []content.Kind{content.KindProfile, content.KindPost, content.KindProject, content.KindOpportunity, content.KindPage} {
		if byKind[kind] > 0 {
			fmt.Fprintf(w, "  %s\t%d\n", kind, byKind[kind])
		}
	}
	fmt.Fprintf(w, "sections\t%d\n", len(site.Sections()))
	fmt.Fprintf(w, "front matter errors\t%d\n", metaErrs)
	fmt.Fprintf(w, "validation errors\t%d\n", result.ErrorCount())
	fmt.Fprintf(w, "site hash\t%s\n", content.SiteHash(site.Documents))
	if err := w.Flush(); err != nil {
		return err
	}

	if result.HasErrors() {
		return fmt.Errorf("%d validation error(s); run lint for details", result.ErrorCount())
	}
	return nil
}

func runLint(configPath, root, format string, quiet, fix, dryRun bool) error {
	cfg, err := loadConfig(configPath, root)
	if err != nil {
		return err
	}
	if format == "" {
		format = cfg.Lint.Format
	}
	if !quiet {
		quiet = cfg.Lint.Quiet
	}

	lintCfg := &lint.Config{Quiet: quiet, Format: format, Fix: fix, DryRun: dryRun}

	site, err := content.Scan(cfg.ContentRoot)
	if err != nil {
		return err
	}

	if fix {
		fixResult, err := lint.NewFixer(lintCfg).Apply(site)
		if err != nil {
			return err
		}
		for path, fixes := range fixResult.Applied {
			for _, f := range fixes {
				if fixResult.DryRun {
					slog.Info("Would fix", logfields.Path(path), slog.String("fix", f))
				} else {
					slog.Info("Fixed", logfields.Path(path), slog.String("fix", f))
				}
			}
		}
		if len(fixResult.Applied) > 0 && !fixResult.DryRun {
			// Re-scan so the lint pass sees the rewritten files.
			site, err = content.Scan(cfg.ContentRoot)
			if err != nil {
				return err
			}
		}
	}

	result := lint.NewLinter(lintCfg).Run(site)

	formatter, err := lint.NewFormatter(format)
	if err != nil {
		return err
	}
	if err := formatter.Format(os.Stdout, result, site.Root); err != nil {
		return err
	}

	if result.HasErrors() {
		return fmt.Errorf("%d error(s) found", result.ErrorCount())
	}
	return nil
}

func runIndex(configPath, root, dbPath string) error {
	cfg, err := loadConfig(configPath, root)
	if err != nil {
		return err
	}
	if dbPath == "" {
		dbPath = cfg.Index.Path
	}

	site, err := content.Scan(cfg.ContentRoot)
	if err != nil {
		return err
	}

	store, err := index.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	start := time.Now()
	if err := store.Rebuild(context.Background(), site); err != nil {
		return err
	}

	slog.Info("Index rebuilt",
		slog.String("path", dbPath),
		logfields.Count(len(site.Documents)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000.0))
	return nil
}

func runQuery(configPath, dbPath string) error {
	if dbPath == "" {
		cfg, err := loadConfig(configPath, "")
		if err != nil {
			return err
		}
		dbPath = cfg.Index.Path
	}

	store, err := index.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	rows, err := store.Documents(context.Background(), index.Query{
		Kind:     CLI.Query.Kind,
		Section:  CLI.Query.Section,
		Author:   CLI.Query.Author,
		Tag:      CLI.Query.Tag,
		Category: CLI.Query.Category,
		Since:    CLI.Query.Since,
	})
	if err != nil {
		return err
	}

	if CLI.Query.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tKIND\tDATE\tTITLE")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.RelPath, row.Kind, row.Date, row.Title)
	}
	return w.Flush()
}

func runAuthors(configPath, root, id string) error {
	cfg, err := loadConfig(configPath, root)
	if err != nil {
		return err
	}

	site, err := content.Scan(cfg.ContentRoot)
	if err != nil {
		return err
	}
	registry := authors.NewRegistry(site)

	if id != "" {
		doc, err := registry.Resolve(id)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", id, doc.RelPath)
		for _, ref := range authors.DocumentsBy(site, id) {
			fmt.Printf("  %s\n", ref.RelPath)
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSUPERUSER\tDOCUMENTS")
	for _, authorID := range registry.IDs() {
		doc, err := registry.Resolve(authorID)
		if err != nil {
			continue
		}
		superuser := doc.Fields.Superuser != nil && *doc.Fields.Superuser
		fmt.Fprintf(w, "%s\t%s\t%t\t%d\n",
			authorID, doc.Fields.Title, superuser, len(authors.DocumentsBy(site, authorID)))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for doc, missing := range authors.Unresolved(site, registry) {
		for _, m := range missing {
			slog.Warn("Unresolved author reference", logfields.Path(doc.RelPath), logfields.Author(m))
		}
	}
	return nil
}

func runTaxonomy(configPath, root, dimension string) error {
	cfg, err := loadConfig(configPath, root)
	if err != nil {
		return err
	}

	dim := taxonomy.Dimension(dimension)
	if dim != taxonomy.Tags && dim != taxonomy.Categories {
		return fmt.Errorf("unknown taxonomy %q (want tags or categories)", dimension)
	}

	site, err := content.Scan(cfg.ContentRoot)
	if err != nil {
		return err
	}
	idx := taxonomy.Build(site)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TERM\tSLUG\tDOCUMENTS")
	for _, term := range idx.Terms(dim) {
		fmt.Fprintf(w, "%s\t%s\t%d\n", term.Name, term.Slug, len(term.Documents))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for canonical, variants := range idx.MixedCaseVariants(dim) {
		slog.Warn("Inconsistent term casing",
			logfields.Term(canonical),
			slog.Any("variants", variants))
	}
	return nil
}

func runHistory(path string, asJSON bool) error {
	revisions, err := history.ForPath(path)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(revisions)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "HASH\tDATE\tAUTHOR\tSUMMARY")
	for _, rev := range revisions {
		hash := rev.Hash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			hash, rev.When.Format("2006-01-02"), rev.Author, rev.Summary)
	}
	return w.Flush()
}

func runWatch(configPath, root string) error {
	cfg, err := loadConfig(configPath, root)
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder(prometheus.NewRegistry())
	lintCfg := &lint.Config{Quiet: cfg.Lint.Quiet, Format: cfg.Lint.Format}

	runner := func(ctx context.Context, trigger string) {
		start := time.Now()

		site, err := content.Scan(cfg.ContentRoot)
		if err != nil {
			slog.Error("Scan failed", logfields.Error(err))
			recorder.RecordScan(trigger, time.Since(start).Seconds(), 0, 0, 0, true)
			return
		}

		result := lint.NewLinter(lintCfg).Run(site)

		recorder.RecordScan(trigger, time.Since(start).Seconds(),
			len(site.Documents), result.ErrorCount(), result.WarningCount(), false)

		slog.Info("Validation pass complete",
			logfields.Event(trigger),
			logfields.ReportID(result.ReportID),
			logfields.Count(len(site.Documents)),
			slog.Int("errors", result.ErrorCount()),
			slog.Int("warnings", result.WarningCount()),
			slog.Int("broken_links", countRuleIssues(result, (&lint.LinksResolveRule{}).Name())),
			logfields.DurationMS(float64(time.Since(start).Microseconds())/1000.0))
	}

	watcher, err := watch.New(cfg.ContentRoot, cfg.Watch, recorder, runner)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watcher.Start(ctx)
}

// countRuleIssues counts the issues a single rule contributed to a lint run.
// The watch loop uses it to report broken links without verifying the site a
// second time; LinksResolveRule already did the work.
func countRuleIssues(result *lint.Result, rule string) int {
	n := 0
	for _, issue := range result.Issues {
		if issue.Rule == rule {
			n++
		}
	}
	return n
}

func runInit(configPath string, force bool) error {
	if err := config.WriteDefault(configPath, force); err != nil {
		return err
	}
	slog.Info("Configuration file created", logfields.Path(configPath))

	// Relative roots are anchored next to the configuration file.
	root := config.Default().ContentRoot
	if !filepath.IsAbs(root) {
		root = filepath.Join(filepath.Dir(configPath), root)
	}
	if _, err := os.Stat(root); err == nil {
		return nil
	}
	if err := scaffoldContent(root); err != nil {
		return err
	}
	slog.Info("Starter content tree created", logfields.Path(root))
	return nil
}

// scaffoldContent lays out a minimal content tree: one author profile and one
// post referencing it, enough for check and lint to pass out of the box.
func scaffoldContent(root string) error {
	files := map[string]string{
		"authors/admin/_index.md": `---
title: Your Name
role: Your Role
superuser: true
email: you@example.org
---

A short biography.
`,
		"post/welcome/index.md": `---
title: Welcome
date: ` + time.Now().Format("2006-01-02") + `
authors:
  - admin
tags:
  - news
---

First post.
`,
	}
	for rel, body := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return err
		}
	}
	return nil
}
