// Package bookmark persists named positions per document in SQLite.
package bookmark

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bethropolis/axnav/internal/logger"
	"github.com/bethropolis/axnav/internal/position"
)

// ErrNotFound is returned when no bookmark has the requested name.
var ErrNotFound = errors.New("bookmark not found")

// Bookmark is one stored row. Pos holds the serialized position; decode it
// with Store.Get or position.Navigator.Unmarshal.
type Bookmark struct {
	Doc       string
	Name      string
	Pos       []byte
	CreatedAt time.Time
}

// Store is the SQLite data access layer for bookmarks.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the bookmarks table. Idempotent.
func (s *Store) Migrate() error {
	if _, err := s.db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS bookmarks (
  doc        TEXT NOT NULL,
  name       TEXT NOT NULL,
  pos        BLOB NOT NULL,
  created_at TIMESTAMP NOT NULL,
  PRIMARY KEY (doc, name)
);
`

// Put stores p under (doc, name), replacing any previous bookmark.
func (s *Store) Put(doc, name string, p position.Position) error {
	_, err := s.db.Exec(
		`INSERT INTO bookmarks (doc, name, pos, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(doc, name) DO UPDATE SET pos = excluded.pos, created_at = excluded.created_at`,
		doc, name, position.Marshal(p), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("put bookmark %q: %w", name, err)
	}
	logger.DebugTagf("bookmark", "put %s#%s = %s", doc, name, p)
	return nil
}

// Get decodes the bookmark against nav. A bookmark whose tree or anchor no
// longer exists decodes to Null without error.
func (s *Store) Get(nav *position.Navigator, doc, name string) (position.Position, error) {
	var raw []byte
	err := s.db.QueryRow("SELECT pos FROM bookmarks WHERE doc = ? AND name = ?", doc, name).Scan(&raw)
	if err == sql.ErrNoRows {
		return position.Null, fmt.Errorf("%w: %s#%s", ErrNotFound, doc, name)
	}
	if err != nil {
		return position.Null, fmt.Errorf("get bookmark %q: %w", name, err)
	}
	p, err := nav.Unmarshal(raw)
	if err != nil {
		return position.Null, fmt.Errorf("decode bookmark %q: %w", name, err)
	}
	return p, nil
}

// List returns the bookmarks of doc ordered by name.
func (s *Store) List(doc string) ([]Bookmark, error) {
	rows, err := s.db.Query(
		"SELECT doc, name, pos, created_at FROM bookmarks WHERE doc = ? ORDER BY name", doc,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	var result []Bookmark
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.Doc, &b.Name, &b.Pos, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

// Delete removes one bookmark.
func (s *Store) Delete(doc, name string) error {
	res, err := s.db.Exec("DELETE FROM bookmarks WHERE doc = ? AND name = ?", doc, name)
	if err != nil {
		return fmt.Errorf("delete bookmark %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s#%s", ErrNotFound, doc, name)
	}
	return nil
}
