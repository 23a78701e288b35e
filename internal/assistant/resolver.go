package assistant

import "strings"

// Match is the outcome of resolving one query.
type Match struct {
	Key     string // empty when Default is set
	Answer  string
	Default bool
}

// Normalize lowercases and trims text the way queries and keys are compared.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Resolve returns the answer of the first entry, in declaration order, whose
// key occurs in the normalized query. Without a match it returns the default.
func Resolve(kb *KnowledgeBase, query string) Match {
	q := Normalize(query)
	if q != "" {
		for _, e := range kb.entries {
			if strings.Contains(q, e.Key) {
				return Match{Key: e.Key, Answer: e.Answer}
			}
		}
	}
	return Match{Answer: kb.fallback, Default: true}
}
