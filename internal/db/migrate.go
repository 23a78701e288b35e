package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS knowledge_entries (
		position   INTEGER PRIMARY KEY CHECK(position >= 0),
		key        TEXT NOT NULL,
		answer     TEXT NOT NULL,
		is_default INTEGER NOT NULL DEFAULT 0 CHECK(is_default IN (0, 1))
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_knowledge_entries_key ON knowledge_entries(key)`,

	// At most one row may carry the fallback answer.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_knowledge_entries_default
		ON knowledge_entries(is_default) WHERE is_default = 1`,

	`ALTER TABLE knowledge_entries ADD COLUMN updated_at TEXT NOT NULL DEFAULT ''`,

	`CREATE TABLE IF NOT EXISTS knowledge_meta (
		id        TEXT PRIMARY KEY CHECK(id = 'current'),
		source    TEXT NOT NULL,
		seeded_at TEXT NOT NULL
	)`,
}
