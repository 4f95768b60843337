// Package index persists a queryable snapshot of the content tree in
// SQLite. The files remain the source of truth; the index is a cache keyed
// by content hashes and is rebuilt wholesale.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/contentkit/internal/cerrors"
	"git.home.luguber.info/inful/contentkit/internal/content"
	"git.home.luguber.info/inful/contentkit/internal/taxonomy"
)

// Store is a SQLite-backed document index.
// Use ":memory:" for an in-memory database, or a file path for persistence.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (and if needed initializes) an index database.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, cerrors.IndexOpenError(dbPath, err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, cerrors.IndexOpenError(dbPath, fmt.Errorf("initialize schema: %w", err))
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS documents (
		rel_path TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		section TEXT NOT NULL,
		title TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL DEFAULT '',
		draft INTEGER NOT NULL DEFAULT 0,
		content_hash TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS document_authors (
		rel_path TEXT NOT NULL,
		author_id TEXT NOT NULL,
		PRIMARY KEY (rel_path, author_id)
	);
	CREATE TABLE IF NOT EXISTS taxonomy_terms (
		dimension TEXT NOT NULL,
		slug TEXT NOT NULL,
		name TEXT NOT NULL,
		rel_path TEXT NOT NULL,
		PRIMARY KEY (dimension, slug, rel_path)
	);
	CREATE INDEX IF NOT EXISTS idx_documents_kind ON documents(kind);
	CREATE INDEX IF NOT EXISTS idx_documents_section ON documents(section);
	CREATE INDEX IF NOT EXISTS idx_authors_author ON document_authors(author_id);
	CREATE INDEX IF NOT EXISTS idx_terms_slug ON taxonomy_terms(dimension, slug);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Rebuild replaces the entire index with the given site, transactionally.
func (s *Store) Rebuild(ctx context.Context, site *content.Site) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rebuild: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"documents", "document_authors", "taxonomy_terms"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, doc := range site.Documents {
		draft := 0
		if doc.Fields.Draft {
			draft = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO documents (rel_path, kind, section, title, summary, date, draft, content_hash)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			doc.RelPath, string(doc.Kind), doc.Section, doc.Fields.Title,
			doc.Fields.Summary, doc.Fields.Date, draft, doc.Hash,
		); err != nil {
			return fmt.Errorf("insert document %s: %w", doc.RelPath, err)
		}

		for _, author := range doc.Fields.Authors {
			if _, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO document_authors (rel_path, author_id) VALUES (?, ?)",
				doc.RelPath, author,
			); err != nil {
				return fmt.Errorf("insert author ref %s: %w", doc.RelPath, err)
			}
		}

		if err := insertTerms(ctx, tx, doc, "tags", doc.Fields.Tags); err != nil {
			return err
		}
		if err := insertTerms(ctx, tx, doc, "categories", doc.Fields.Categories); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO meta (key, value) VALUES ('site_hash', ?)",
		content.SiteHash(site.Documents),
	); err != nil {
		return fmt.Errorf("store site hash: %w", err)
	}

	return tx.Commit()
}

func insertTerms(ctx context.Context, tx *sql.Tx, doc *content.Document, dimension string, values []string) error {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO taxonomy_terms (dimension, slug, name, rel_path) VALUES (?, ?, ?, ?)",
			dimension, taxonomy.Slug(v), v, doc.RelPath,
		); err != nil {
			return fmt.Errorf("insert %s term %q for %s: %w", dimension, v, doc.RelPath, err)
		}
	}
	return nil
}

// SiteHash returns the hash of the document set the index was built from,
// or "" if the index has never been built.
func (s *Store) SiteHash(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hash string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = 'site_hash'").Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read site hash: %w", err)
	}
	return hash, nil
}
