package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"contentkit.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Check struct {
		Root string `short:"r" help:"Content root (overrides configuration)"`
	} `cmd:"" help:"Scan the content tree and report a summary"`

	Lint struct {
		Root   string `short:"r" help:"Content root (overrides configuration)"`
		Format string `short:"f" help:"Output format (text, json)"`
		Quiet  bool   `short:"q" help:"Only report errors"`
		Fix    bool   `help:"Apply automatic fixes before linting"`
		DryRun bool   `help:"Show fixes without rewriting files"`
	} `cmd:"" help:"Validate front matter, filenames, authors and links"`

	Index struct {
		Root string `short:"r" help:"Content root (overrides configuration)"`
		Path string `short:"p" help:"Index database path (overrides configuration)"`
	} `cmd:"" help:"Rebuild the document index database"`

	Query struct {
		Path     string `short:"p" help:"Index database path (overrides configuration)"`
		Kind     string `help:"Filter by document kind (profile, post, project, opportunity, page)"`
		Section  string `help:"Filter by top-level section"`
		Author   string `help:"Filter by author identifier"`
		Tag      string `help:"Filter by tag"`
		Category string `help:"Filter by category"`
		Since    string `help:"Only documents dated on or after this date"`
		JSON     bool   `help:"Emit JSON instead of a table"`
	} `cmd:"" help:"Query the document index"`

	Authors struct {
		Root string `short:"r" help:"Content root (overrides configuration)"`
		ID   string `arg:"" optional:"" help:"Resolve one author identifier"`
	} `cmd:"" help:"List author profiles, or resolve one identifier"`

	Taxonomy struct {
		Root      string `short:"r" help:"Content root (overrides configuration)"`
		Dimension string `arg:"" optional:"" default:"tags" help:"Which taxonomy to list (tags, categories)"`
	} `cmd:"" help:"List taxonomy terms with document counts"`

	History struct {
		Path string `arg:"" help:"Document path to show revisions for"`
		JSON bool   `help:"Emit JSON instead of a table"`
	} `cmd:"" help:"Show the recorded revisions of a document"`

	Watch struct {
		Root string `short:"r" help:"Content root (overrides configuration)"`
	} `cmd:"" help:"Re-validate continuously as the content tree changes"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	var err error
	switch ctx.Command() {
	case "check":
		err = runCheck(CLI.Config, CLI.Check.Root)
	case "lint":
		err = runLint(CLI.Config, CLI.Lint.Root, CLI.Lint.Format, CLI.Lint.Quiet, CLI.Lint.Fix, CLI.Lint.DryRun)
	case "index":
		err = runIndex(CLI.Config, CLI.Index.Root, CLI.Index.Path)
	case "query":
		err = runQuery(CLI.Config, CLI.Query.Path)
	case "authors", "authors <id>":
		err = runAuthors(CLI.Config, CLI.Authors.Root, CLI.Authors.ID)
	case "taxonomy", "taxonomy <dimension>":
		err = runTaxonomy(CLI.Config, CLI.Taxonomy.Root, CLI.Taxonomy.Dimension)
	case "history <path>":
		err = runHistory(CLI.History.Path, CLI.History.JSON)
	case "watch":
		err = runWatch(CLI.Config, CLI.Watch.Root)
	case "init":
		err = runInit(CLI.Config, CLI.Init.Force)
	}

	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
