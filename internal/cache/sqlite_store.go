package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS pages (
	fingerprint TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS pairs (
	fingerprint   TEXT NOT NULL,
	position      INTEGER NOT NULL,
	original_text TEXT NOT NULL,
	translation   TEXT NOT NULL,
	PRIMARY KEY (fingerprint, position)
);`

// SQLiteStore keeps the cache in an SQLite database. Pages with an empty
// entry are kept in the pages table so invalidation survives a reload.
type SQLiteStore struct {
	path string
}

// NewSQLiteStore creates a store for the database at path
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Location() string {
	return s.path
}

func (s *SQLiteStore) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return db, nil
}

func (s *SQLiteStore) Load() (Cache, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return Cache{}, nil
	}

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	c := Cache{}

	pages, err := db.Query(`SELECT fingerprint FROM pages`)
	if err != nil {
		return nil, fmt.Errorf("failed to read pages: %w", err)
	}
	for pages.Next() {
		var fingerprint string
		if err := pages.Scan(&fingerprint); err != nil {
			pages.Close()
			return nil, err
		}
		c[fingerprint] = []Pair{}
	}
	pages.Close()
	if err := pages.Err(); err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT fingerprint, original_text, translation FROM pairs ORDER BY fingerprint, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to read pairs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var fingerprint string
		var p Pair
		if err := rows.Scan(&fingerprint, &p.OriginalText, &p.Translation); err != nil {
			return nil, err
		}
		c[fingerprint] = append(c[fingerprint], p)
	}
	return c, rows.Err()
}

// Save replaces every stored page inside a single transaction.
func (s *SQLiteStore) Save(c Cache) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM pairs`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM pages`); err != nil {
		return err
	}

	pageStmt, err := tx.Prepare(`INSERT INTO pages (fingerprint) VALUES (?)`)
	if err != nil {
		return err
	}
	defer pageStmt.Close()

	pairStmt, err := tx.Prepare(`INSERT INTO pairs (fingerprint, position, original_text, translation) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer pairStmt.Close()

	for fingerprint, pairs := range c {
		if _, err := pageStmt.Exec(fingerprint); err != nil {
			return fmt.Errorf("failed to insert page %s: %w", fingerprint, err)
		}
		for i, p := range pairs {
			if _, err := pairStmt.Exec(fingerprint, i, p.OriginalText, p.Translation); err != nil {
				return fmt.Errorf("failed to insert pair for page %s: %w", fingerprint, err)
			}
		}
	}

	return tx.Commit()
}
