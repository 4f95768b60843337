package content

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/contentkit/internal/cerrors"
	"git.home.luguber.info/inful/contentkit/internal/logfields"
)

// Site is the loaded content tree: every document under one content root.
type Site struct {
	Root      string
	ScanID    string
	ScannedAt time.Time
	Documents []*Document

	byRel map[string]*Document
}

// Scan walks a content root and loads every markup document and every
// pre-rendered HTML variant into a Site. Hidden files and directories are
// skipped; assets are not loaded (they are referenced, not parsed).
func Scan(root string) (*Site, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, cerrors.ContentRootMissing(root)
	}

	site := &Site{
		Root:      root,
		ScanID:    uuid.NewString(),
		ScannedAt: time.Now(),
		byRel:     make(map[string]*Document),
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if strings.HasPrefix(d.Name(), ".") && d.Name() != "." {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !IsMarkup(path) && !IsRenderedHTML(path) {
			return nil
		}

		doc, err := Load(root, path)
		if err != nil {
			return err
		}
		site.add(doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(site.Documents, func(i, j int) bool {
		return site.Documents[i].RelPath < site.Documents[j].RelPath
	})

	slog.Debug("content tree scanned",
		logfields.Path(root),
		logfields.Count(len(site.Documents)))

	return site, nil
}

func (s *Site) add(doc *Document) {
	s.Documents = append(s.Documents, doc)
	s.byRel[doc.RelPath] = doc
}

// Lookup returns the document at a root-relative path.
func (s *Site) Lookup(rel string) (*Document, bool) {
	doc, ok := s.byRel[filepath.ToSlash(rel)]
	return doc, ok
}

// ByKind returns the documents of one kind, in path order.
func (s *Site) ByKind(kind Kind) []*Document {
	var out []*Document
	for _, d := range s.Documents {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Profiles returns the author profile documents keyed by author identifier.
func (s *Site) Profiles() map[string]*Document {
	out := make(map[string]*Document)
	for _, d := range s.ByKind(KindProfile) {
		if id := d.AuthorID(); id != "" {
			out[id] = d
		}
	}
	return out
}

// Sections returns the distinct sections present, sorted.
func (s *Site) Sections() []string {
	seen := make(map[string]struct{})
	for _, d := range s.Documents {
		if d.Section != "" {
			seen[d.Section] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for sec := range seen {
		out = append(out, sec)
	}
	sort.Strings(out)
	return out
}
