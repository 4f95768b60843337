// Package content models the documents of a personal academic site: YAML
// front matter plus a markup body, organized under a single content root.
package content

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/contentkit/internal/cerrors"
	"git.home.luguber.info/inful/contentkit/internal/frontmatter"
)

// Kind classifies a document by what the site does with it.
type Kind string

const (
	KindProfile     Kind = "profile"     // author profile (authors/<id>/_index.md)
	KindPost        Kind = "post"        // blog post
	KindProject     Kind = "project"     // project page
	KindOpportunity Kind = "opportunity" // position advertisement
	KindPage        Kind = "page"        // anything else
)

// Document is one content record: front matter plus body, as loaded from disk.
type Document struct {
	Path     string // Absolute path to the file
	RelPath  string // Path relative to the content root
	Section  string // First path element under the content root ("post", "authors", ...)
	Kind     Kind
	Raw      []byte // Full file content
	Meta     map[string]any // Raw front matter fields
	Fields   Fields         // Typed view of the recognized fields
	Body     []byte
	HasMeta  bool
	Style    frontmatter.Style
	MetaErr  error  // Front matter parse failure, recorded for lint rules
	Hash     string // sha256 of Raw, for change detection
	Rendered bool   // Pre-rendered HTML variant rather than markup source
}

// AuthorID returns the author identifier a profile document defines, or ""
// for non-profile documents. The identifier is the profile's directory name
// (authors/<id>/_index.md) or its file name (authors/<id>.md).
func (d *Document) AuthorID() string {
	if d.Kind != KindProfile {
		return ""
	}
	rel := filepath.ToSlash(d.RelPath)
	base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	if base == "_index" || base == "index" {
		return filepath.Base(filepath.Dir(rel))
	}
	return base
}

// IsMarkup reports whether the file carries markup source (as opposed to a
// pre-rendered HTML variant or an asset).
func IsMarkup(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// IsRenderedHTML reports whether the file is a pre-rendered HTML document.
func IsRenderedHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// Load reads and parses a single document. root is used to compute RelPath
// and the section; pass the file's own directory when loading standalone.
//
// A malformed front matter block does not fail the load: the error lands in
// MetaErr so lint rules can report it with file context.
func Load(root, path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, cerrors.DocumentLoadError(path, err)
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)

	section := ""
	if i := strings.Index(rel, "/"); i > 0 {
		section = rel[:i]
	}

	sum := sha256.Sum256(raw)

	doc := &Document{
		Path:    path,
		RelPath: rel,
		Section: section,
		Raw:     raw,
		Hash:    hex.EncodeToString(sum[:]),
	}

	if IsRenderedHTML(path) {
		doc.Rendered = true
		doc.Body = raw
		doc.Kind = classify(doc)
		return doc, nil
	}

	meta, body, had, style, err := frontmatter.Split(raw)
	doc.HasMeta = had
	doc.Style = style
	doc.Body = body
	if err != nil {
		doc.MetaErr = cerrors.FrontMatterError(rel, err)
		doc.Body = nil
		doc.Kind = classify(doc)
		return doc, nil
	}

	fields, err := frontmatter.Parse(meta)
	if err != nil {
		doc.MetaErr = cerrors.FrontMatterError(rel, err)
		doc.Kind = classify(doc)
		return doc, nil
	}
	doc.Meta = fields
	doc.Fields = DecodeFields(meta, fields)
	doc.Kind = classify(doc)
	return doc, nil
}

// classify derives the document kind from its location and `type` field.
func classify(d *Document) Kind {
	switch d.Section {
	case "authors", "author":
		return KindProfile
	case "post", "posts", "blog":
		return KindPost
	case "project", "projects", "publication_types":
		return KindProject
	case "opportunity", "opportunities", "jobs", "vacancies":
		return KindOpportunity
	}

	switch strings.ToLower(d.Fields.Type) {
	case "profile", "authors":
		return KindProfile
	case "post":
		return KindPost
	case "project":
		return KindProject
	case "opportunity", "job":
		return KindOpportunity
	}

	if d.Fields.Profile != nil && *d.Fields.Profile {
		return KindProfile
	}
	return KindPage
}
