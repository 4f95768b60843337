package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Formatter formats lint results for output.
type Formatter interface {
	Format(w io.Writer, result *Result, root string) error
}

// NewFormatter selects a formatter by name ("text" or "json").
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "", "text":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown lint output format %q", format)
	}
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// Format outputs results grouped by file, with a summary footer.
func (f *TextFormatter) Format(w io.Writer, result *Result, root string) error {
	if _, err := fmt.Fprintf(w, "Linting content in: %s\n", root); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("━", 60)); err != nil {
		return err
	}

	byFile := make(map[string][]Issue)
	for _, issue := range result.Issues {
		byFile[issue.FilePath] = append(byFile[issue.FilePath], issue)
	}
	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		for _, issue := range byFile[file] {
			if err := formatIssue(w, issue); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintln(w, strings.Repeat("━", 60)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Results:\n  %d files scanned\n", result.FilesTotal); err != nil {
		return err
	}

	if n := result.ErrorCount(); n > 0 {
		if _, err := fmt.Fprintf(w, "  %d error%s\n", n, pluralize(n)); err != nil {
			return err
		}
	}
	if n := result.WarningCount(); n > 0 {
		if _, err := fmt.Fprintf(w, "  %d warning%s\n", n, pluralize(n)); err != nil {
			return err
		}
	}
	if len(result.Issues) == 0 {
		if _, err := fmt.Fprintln(w, "  no issues found"); err != nil {
			return err
		}
	}
	return nil
}

func formatIssue(w io.Writer, issue Issue) error {
	location := issue.FilePath
	if issue.Line > 0 {
		location = fmt.Sprintf("%s:%d", issue.FilePath, issue.Line)
	}
	if _, err := fmt.Fprintf(w, "%s [%s] %s: %s\n", issue.Severity, issue.Rule, location, issue.Message); err != nil {
		return err
	}
	if issue.Explanation != "" {
		if _, err := fmt.Fprintf(w, "    %s\n", issue.Explanation); err != nil {
			return err
		}
	}
	if issue.Fix != "" {
		if _, err := fmt.Fprintf(w, "    fix: %s\n", issue.Fix); err != nil {
			return err
		}
	}
	return nil
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// JSONFormatter emits the Result as indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, result *Result, _ string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
