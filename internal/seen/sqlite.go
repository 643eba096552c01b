package seen

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the seen-set in an embedded database. Writes land
// immediately, so Save is a no-op kept for interface symmetry.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seen database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS seen_urls (
		url TEXT PRIMARY KEY,
		added_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to init seen table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Contains(url string) bool {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM seen_urls WHERE url = ?`, url).Scan(&one)
	return err == nil
}

func (s *SQLiteStore) Add(urls ...string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seen insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO seen_urls (url, added_at) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare seen insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, err := stmt.Exec(u, now); err != nil {
			return fmt.Errorf("failed to insert seen url: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Save() error { return nil }

func (s *SQLiteStore) Close() error { return s.db.Close() }
