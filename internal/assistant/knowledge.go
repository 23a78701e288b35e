// Package assistant answers free-text questions about the assessment terms by
// keyword matching against an ordered knowledge base.
package assistant

import (
	"fmt"
	"strings"
)

// DefaultKey is the reserved key of the fallback answer. It never takes part
// in matching.
const DefaultKey = "default"

// Entry binds a normalized key phrase to its answer.
type Entry struct {
	Key    string
	Answer string
}

// KnowledgeBase is an ordered, immutable set of entries plus the default
// answer. Entry order decides which key wins when several match.
type KnowledgeBase struct {
	entries  []Entry
	fallback string
}

// NewKnowledgeBase validates and normalizes entries. Keys must be non-empty,
// unique after normalization, and must not be DefaultKey.
func NewKnowledgeBase(entries []Entry, defaultAnswer string) (*KnowledgeBase, error) {
	if strings.TrimSpace(defaultAnswer) == "" {
		return nil, fmt.Errorf("%w: missing default answer", ErrInvalidKnowledgeBase)
	}
	seen := make(map[string]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for i, e := range entries {
		key := Normalize(e.Key)
		switch {
		case key == "":
			return nil, fmt.Errorf("%w: entry %d has an empty key", ErrInvalidKnowledgeBase, i)
		case key == DefaultKey:
			return nil, fmt.Errorf("%w: entry %d uses the reserved key %q", ErrInvalidKnowledgeBase, i, DefaultKey)
		case strings.TrimSpace(e.Answer) == "":
			return nil, fmt.Errorf("%w: key %q has an empty answer", ErrInvalidKnowledgeBase, key)
		}
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: key %q repeated at entries %d and %d", ErrInvalidKnowledgeBase, key, prev, i)
		}
		seen[key] = i
		out = append(out, Entry{Key: key, Answer: e.Answer})
	}
	return &KnowledgeBase{entries: out, fallback: defaultAnswer}, nil
}

// Entries returns the entries in matching order.
func (kb *KnowledgeBase) Entries() []Entry {
	out := make([]Entry, len(kb.entries))
	copy(out, kb.entries)
	return out
}

// Default returns the fallback answer.
func (kb *KnowledgeBase) Default() string { return kb.fallback }

// Len is the number of matchable entries.
func (kb *KnowledgeBase) Len() int { return len(kb.entries) }

// Shadow is a pair of keys where Earlier always wins over Later, because
// Earlier is a substring of Later and is declared first.
type Shadow struct {
	Earlier string
	Later   string
}

// Shadowed lists every key that can never match because an earlier key
// always matches first.
func (kb *KnowledgeBase) Shadowed() []Shadow {
	var out []Shadow
	for j, later := range kb.entries {
		for _, earlier := range kb.entries[:j] {
			if strings.Contains(later.Key, earlier.Key) {
				out = append(out, Shadow{Earlier: earlier.Key, Later: later.Key})
				break
			}
		}
	}
	return out
}
