package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/dilsehat/internal/assistant"
	"github.com/alexanderramin/dilsehat/internal/db"
)

// SQLiteKnowledgeRepo implements KnowledgeRepo on the knowledge_entries table.
type SQLiteKnowledgeRepo struct {
	db  db.DBTX
	now func() time.Time
}

func NewSQLiteKnowledgeRepo(conn db.DBTX) *SQLiteKnowledgeRepo {
	return &SQLiteKnowledgeRepo{db: conn, now: time.Now}
}

func (r *SQLiteKnowledgeRepo) List(ctx context.Context) (*KnowledgeSnapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, answer, is_default FROM knowledge_entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying knowledge entries: %w", err)
	}
	defer rows.Close()

	snap := &KnowledgeSnapshot{}
	var rowCount int
	for rows.Next() {
		var e assistant.Entry
		var isDefault int
		if err := rows.Scan(&e.Key, &e.Answer, &isDefault); err != nil {
			return nil, fmt.Errorf("scanning knowledge entry: %w", err)
		}
		rowCount++
		if isDefault == 1 {
			snap.Default = e.Answer
			continue
		}
		snap.Entries = append(snap.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating knowledge entries: %w", err)
	}
	if rowCount == 0 {
		return nil, fmt.Errorf("knowledge base: %w", ErrNotFound)
	}

	var source sql.NullString
	err = r.db.QueryRowContext(ctx, `SELECT source FROM knowledge_meta WHERE id = 'current'`).Scan(&source)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("reading knowledge source: %w", err)
	}
	snap.Source = source.String
	return snap, nil
}

func (r *SQLiteKnowledgeRepo) ReplaceAll(ctx context.Context, snap *KnowledgeSnapshot) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM knowledge_entries`); err != nil {
		return fmt.Errorf("clearing knowledge entries: %w", err)
	}

	stamp := r.now().UTC().Format(time.RFC3339)
	insert := `INSERT INTO knowledge_entries (position, key, answer, is_default, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	for i, e := range snap.Entries {
		if _, err := r.db.ExecContext(ctx, insert, i, e.Key, e.Answer, 0, stamp); err != nil {
			return fmt.Errorf("inserting knowledge entry %q: %w", e.Key, err)
		}
	}
	if snap.Default != "" {
		_, err := r.db.ExecContext(ctx, insert, len(snap.Entries), assistant.DefaultKey, snap.Default, 1, stamp)
		if err != nil {
			return fmt.Errorf("inserting default answer: %w", err)
		}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO knowledge_meta (id, source, seeded_at) VALUES ('current', ?, ?)`,
		snap.Source, stamp)
	if err != nil {
		return fmt.Errorf("recording knowledge source: %w", err)
	}
	return nil
}
