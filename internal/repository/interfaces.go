package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/dilsehat/internal/assistant"
)

// ErrNotFound is returned when the store holds no knowledge base.
var ErrNotFound = errors.New("not found")

// KnowledgeSnapshot is the stored form of a knowledge base: entries in
// matching order plus the default answer.
type KnowledgeSnapshot struct {
	Entries []assistant.Entry
	Default string
	Source  string
}

type KnowledgeRepo interface {
	// List returns the stored snapshot, ErrNotFound when nothing was seeded.
	List(ctx context.Context) (*KnowledgeSnapshot, error)
	// ReplaceAll swaps the stored entries for snap. Callers run it inside a
	// unit of work so a failed replace leaves the old table intact.
	ReplaceAll(ctx context.Context, snap *KnowledgeSnapshot) error
}
