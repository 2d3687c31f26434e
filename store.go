package sitedef

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested page is not indexed.
var ErrNotFound = errors.New("sitedef: page not found")

// IndexedPage is one row of the content index.
type IndexedPage struct {
	Path        string
	Slug        string
	Title       string
	Description string
	Image       string
	OGType      string
}

// Meta returns the page's metadata input for SiteMeta.
func (p IndexedPage) Meta() PageMeta {
	return PageMeta{
		Title:       p.Title,
		Description: p.Description,
		Path:        p.Path,
		OGType:      p.OGType,
		Image:       p.Image,
	}
}

// Store wraps a SQLite database holding the content index.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the preview server read while a reindex writes.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS pages (
    path TEXT PRIMARY KEY,
    slug TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    image TEXT NOT NULL,
    og_type TEXT NOT NULL
);
`)
	return err
}

// ReplacePages swaps the whole index for pages in one transaction.
func (s *Store) ReplacePages(ctx context.Context, pages []IndexedPage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO pages (path, slug, title, description, image, og_type) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, p := range pages {
		if _, err := stmt.ExecContext(ctx, p.Path, p.Slug, p.Title, p.Description, p.Image, p.OGType); err != nil {
			return fmt.Errorf("insert %s: %w", p.Path, err)
		}
	}
	return tx.Commit()
}

// SavePage upserts a single page.
func (s *Store) SavePage(ctx context.Context, p IndexedPage) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO pages (path, slug, title, description, image, og_type) VALUES (?, ?, ?, ?, ?, ?)`,
		p.Path, p.Slug, p.Title, p.Description, p.Image, p.OGType)
	return err
}

// GetPage returns the page indexed at path, or ErrNotFound.
func (s *Store) GetPage(ctx context.Context, path string) (IndexedPage, error) {
	p := IndexedPage{Path: path}
	err := s.db.QueryRowContext(ctx, `SELECT slug, title, description, image, og_type FROM pages WHERE path = ?`, path).
		Scan(&p.Slug, &p.Title, &p.Description, &p.Image, &p.OGType)
	if errors.Is(err, sql.ErrNoRows) {
		return IndexedPage{}, ErrNotFound
	}
	if err != nil {
		return IndexedPage{}, err
	}
	return p, nil
}

// ListPages returns every indexed page ordered by path.
func (s *Store) ListPages(ctx context.Context) ([]IndexedPage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, slug, title, description, image, og_type FROM pages ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := []IndexedPage{}
	for rows.Next() {
		var p IndexedPage
		if err := rows.Scan(&p.Path, &p.Slug, &p.Title, &p.Description, &p.Image, &p.OGType); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// DeletePage removes a page by path.
func (s *Store) DeletePage(ctx context.Context, path string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE path = ?`, path)
	return err
}
