// Package sqlite provides SQLite implementation of repository interfaces
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// DB wraps the sql.DB with SQLite-specific settings
type DB struct {
	*sql.DB
}

// New opens the SQLite database at dbPath, creating its directory if needed
func New(dbPath string) (*DB, error) {
	cleanPath := filepath.Clean(dbPath)

	if !filepath.IsLocal(cleanPath) && !filepath.IsAbs(cleanPath) {
		return nil, fmt.Errorf("invalid database path: potential path traversal detected")
	}

	dir := filepath.Dir(cleanPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL for concurrent readers, busy_timeout for lock contention
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", cleanPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection serializes all writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DB{db}, nil
}

// Migrate runs database migrations
func (db *DB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS ads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			description TEXT,
			socialId TEXT NOT NULL CHECK(socialId <> ''),
			category TEXT,
			timestamp REAL NOT NULL
		)`,

		// Upload support
		`ALTER TABLE ads ADD COLUMN file_path TEXT`,

		// Likes
		`ALTER TABLE ads ADD COLUMN likes INTEGER DEFAULT 0`,

		`CREATE INDEX IF NOT EXISTS idx_ads_timestamp ON ads(timestamp)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			// Columns already present on databases created by this revision
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, migration)
		}
	}

	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
