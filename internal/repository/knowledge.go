package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dilsehat/internal/assistant"
	"github.com/alexanderramin/dilsehat/internal/db"
)

// LoadKnowledgeBase reads the stored snapshot and validates it into a
// KnowledgeBase. A store without a default answer is rejected.
func LoadKnowledgeBase(ctx context.Context, repo KnowledgeRepo) (*assistant.KnowledgeBase, error) {
	snap, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	kb, err := assistant.NewKnowledgeBase(snap.Entries, snap.Default)
	if err != nil {
		return nil, fmt.Errorf("loading stored knowledge base: %w", err)
	}
	return kb, nil
}

// SeedKnowledgeBase replaces the stored knowledge base with kb in a single
// transaction.
func SeedKnowledgeBase(ctx context.Context, uow db.UnitOfWork, kb *assistant.KnowledgeBase, source string) error {
	snap := &KnowledgeSnapshot{Entries: kb.Entries(), Default: kb.Default(), Source: source}
	return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteKnowledgeRepo(tx).ReplaceAll(ctx, snap)
	})
}
