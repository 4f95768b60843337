package linkverify

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/contentkit/internal/content"
	"git.home.luguber.info/inful/contentkit/internal/htmldoc"
	"git.home.luguber.info/inful/contentkit/internal/markdown"
)

// Finding is one broken reference.
type Finding struct {
	Source      string  // root-relative path of the referencing document
	Destination string
	Fragment    string
	Kind        RefKind
	Reason      string
}

// Report summarizes a verification pass over a site.
type Report struct {
	ReferencesChecked int
	External          int
	Broken            []Finding
}

// Verify extracts and resolves every reference in the site.
func Verify(site *content.Site) (*Report, error) {
	report := &Report{}
	for _, doc := range site.Documents {
		refs, err := Extract(doc)
		if err != nil {
			return nil, fmt.Errorf("extract references from %s: %w", doc.RelPath, err)
		}
		for _, ref := range refs {
			report.ReferencesChecked++
			if ref.Kind == RefKindExternal {
				report.External++
				continue
			}
			if f := check(site, ref); f != nil {
				report.Broken = append(report.Broken, *f)
			}
		}
	}
	return report, nil
}

func check(site *content.Site, ref Reference) *Finding {
	switch ref.Kind {
	case RefKindSelfFragment:
		if !hasFragment(ref.Source, ref.Fragment) {
			return broken(ref, "fragment not found in document")
		}
		return nil

	case RefKindBibliography, RefKindImage:
		if fileExists(site, ref.Source, ref.Destination) {
			return nil
		}
		return broken(ref, "referenced file does not exist")

	case RefKindLink:
		target, ok := resolveDocument(site, ref.Source, ref.Destination)
		if !ok {
			// A link may legitimately point at a non-document file.
			if fileExists(site, ref.Source, ref.Destination) {
				return nil
			}
			return broken(ref, "link target does not resolve")
		}
		if ref.Fragment != "" && !hasFragment(target, ref.Fragment) {
			return broken(ref, "fragment not found in link target")
		}
		return nil
	}
	return nil
}

func broken(ref Reference, reason string) *Finding {
	return &Finding{
		Source:      ref.Source.RelPath,
		Destination: ref.Destination,
		Fragment:    ref.Fragment,
		Kind:        ref.Kind,
		Reason:      reason,
	}
}

// resolveDocument maps a link destination to a document of the site, trying
// the path forms the site generator serves: the file itself, a page bundle
// (dir/index.md), and a section index (dir/_index.md).
func resolveDocument(site *content.Site, from *content.Document, dest string) (*content.Document, bool) {
	rel := normalizeDest(from, dest)
	if rel == "" {
		return nil, false
	}

	candidates := []string{
		rel,
		rel + ".md",
		path.Join(rel, "index.md"),
		path.Join(rel, "_index.md"),
		rel + ".html",
	}
	for _, c := range candidates {
		if doc, ok := site.Lookup(c); ok {
			return doc, true
		}
	}
	return nil, false
}

func normalizeDest(from *content.Document, dest string) string {
	dest = strings.TrimSuffix(dest, "/")
	if strings.HasPrefix(dest, "/") {
		return strings.TrimPrefix(path.Clean(dest), "/")
	}
	base := path.Dir(from.RelPath)
	rel := path.Clean(path.Join(base, dest))
	if rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return rel
}

func fileExists(site *content.Site, from *content.Document, dest string) bool {
	rel := normalizeDest(from, dest)
	if rel == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(site.Root, filepath.FromSlash(rel)))
	return err == nil
}

func hasFragment(doc *content.Document, frag string) bool {
	if doc.Rendered {
		info, err := htmldoc.Parse(doc.Raw)
		if err != nil {
			return false
		}
		return info.HasAnchor(frag)
	}
	headings, err := markdown.ExtractHeadings(doc.Body)
	if err != nil {
		return false
	}
	for _, h := range headings {
		if h.Anchor == frag {
			return true
		}
	}
	return false
}
