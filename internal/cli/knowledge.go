package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dilsehat/internal/assistant"
	"github.com/alexanderramin/dilsehat/internal/db"
	"github.com/alexanderramin/dilsehat/internal/repository"
)

// LoadKnowledge opens the SQLite knowledge store at path and loads its
// entries in match order.
func LoadKnowledge(ctx context.Context, path string) (*assistant.KnowledgeBase, error) {
	database, err := db.OpenDB(path)
	if err != nil {
		return nil, fmt.Errorf("opening knowledge store %s: %w", path, err)
	}
	defer database.Close()

	kb, err := repository.LoadKnowledgeBase(ctx, repository.NewSQLiteKnowledgeRepo(database))
	if err != nil {
		return nil, fmt.Errorf("loading knowledge store %s: %w", path, err)
	}
	return kb, nil
}

// SeedKnowledge writes kb into the SQLite knowledge store at path,
// replacing whatever was there.
func SeedKnowledge(ctx context.Context, path string, kb *assistant.KnowledgeBase, source string) error {
	database, err := db.OpenDB(path)
	if err != nil {
		return fmt.Errorf("opening knowledge store %s: %w", path, err)
	}
	defer database.Close()

	return repository.SeedKnowledgeBase(ctx, db.NewSQLiteUnitOfWork(database), kb, source)
}
