package index

import (
	"context"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/contentkit/internal/cerrors"
	"git.home.luguber.info/inful/contentkit/internal/taxonomy"
)

// DocumentRow is one indexed document.
type DocumentRow struct {
	RelPath string `json:"rel_path"`
	Kind    string `json:"kind"`
	Section string `json:"section"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
	Date    string `json:"date,omitempty"`
	Draft   bool   `json:"draft,omitempty"`
	Hash    string `json:"hash"`
}

// Query filters indexed documents. Zero fields match everything.
type Query struct {
	Kind     string
	Section  string
	Author   string
	Tag      string // matched by slug
	Category string // matched by slug
	Since    string // inclusive lower bound on date (lexicographic on the authored form)
}

// Documents returns the indexed documents matching the query, in path order.
func (s *Store) Documents(ctx context.Context, q Query) ([]DocumentRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		where []string
		args  []any
	)

	if q.Kind != "" {
		where = append(where, "d.kind = ?")
		args = append(args, q.Kind)
	}
	if q.Section != "" {
		where = append(where, "d.section = ?")
		args = append(args, q.Section)
	}
	if q.Author != "" {
		where = append(where, "d.rel_path IN (SELECT rel_path FROM document_authors WHERE author_id = ?)")
		args = append(args, q.Author)
	}
	if q.Tag != "" {
		where = append(where, "d.rel_path IN (SELECT rel_path FROM taxonomy_terms WHERE dimension = 'tags' AND slug = ?)")
		args = append(args, taxonomy.Slug(q.Tag))
	}
	if q.Category != "" {
		where = append(where, "d.rel_path IN (SELECT rel_path FROM taxonomy_terms WHERE dimension = 'categories' AND slug = ?)")
		args = append(args, taxonomy.Slug(q.Category))
	}
	if q.Since != "" {
		where = append(where, "d.date != '' AND d.date >= ?")
		args = append(args, q.Since)
	}

	query := "SELECT d.rel_path, d.kind, d.section, d.title, d.summary, d.date, d.draft, d.content_hash FROM documents d"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY d.rel_path"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, cerrors.IndexQueryError(fmt.Errorf("query documents: %w", err))
	}
	defer rows.Close()

	var out []DocumentRow
	for rows.Next() {
		var r DocumentRow
		var draft int
		if err := rows.Scan(&r.RelPath, &r.Kind, &r.Section, &r.Title, &r.Summary, &r.Date, &draft, &r.Hash); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		r.Draft = draft != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// TermCount is one taxonomy term with its document count.
type TermCount struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Terms returns the taxonomy terms of one dimension with document counts,
// most-used first.
func (s *Store) Terms(ctx context.Context, dimension string) ([]TermCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT slug, MIN(name), COUNT(*) FROM taxonomy_terms
		 WHERE dimension = ? GROUP BY slug ORDER BY COUNT(*) DESC, slug`,
		dimension,
	)
	if err != nil {
		return nil, fmt.Errorf("query terms: %w", err)
	}
	defer rows.Close()

	var out []TermCount
	for rows.Next() {
		var t TermCount
		if err := rows.Scan(&t.Slug, &t.Name, &t.Count); err != nil {
			return nil, fmt.Errorf("scan term: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Stats summarizes the index.
type Stats struct {
	Documents int            `json:"documents"`
	ByKind    map[string]int `json:"by_kind"`
}

// Stats returns document counts by kind.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT kind, COUNT(*) FROM documents GROUP BY kind")
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	stats := &Stats{ByKind: make(map[string]int)}
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats.ByKind[kind] = n
		stats.Documents += n
	}
	return stats, rows.Err()
}
