package assistant

import "errors"

var (
	// ErrEmptyQuery is returned for empty or all-whitespace questions.
	ErrEmptyQuery = errors.New("empty query")

	// ErrUnknownSuggestion is returned by Suggest for labels outside the curated set.
	ErrUnknownSuggestion = errors.New("unknown suggestion")

	// ErrSessionClosed is returned by Ask after Close.
	ErrSessionClosed = errors.New("chat session closed")

	// ErrInvalidKnowledgeBase marks a knowledge base that cannot be used.
	ErrInvalidKnowledgeBase = errors.New("invalid knowledge base")
)
