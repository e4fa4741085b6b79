// Package textmatch provides case-insensitive multi-keyword substring matching
// backed by an Aho-Corasick automaton.
package textmatch

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Matcher finds which of a fixed keyword set occur in a text.
// A Matcher is immutable after construction and safe for concurrent use.
type Matcher struct {
	matcher  *ahocorasick.Matcher
	keywords []string
}

// New builds a Matcher over keywords. Keywords are lower-cased; empty and
// duplicate keywords are dropped.
func New(keywords ...string) *Matcher {
	m := &Matcher{keywords: make([]string, 0, len(keywords))}
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		normalized := strings.ToLower(kw)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		m.keywords = append(m.keywords, normalized)
	}
	if len(m.keywords) > 0 {
		m.matcher = ahocorasick.NewStringMatcher(m.keywords)
	}
	return m
}

// Any reports whether text contains at least one keyword.
func (m *Matcher) Any(text string) bool {
	return len(m.hits(text)) > 0
}

// Matches returns the distinct keywords found in text, in keyword order.
func (m *Matcher) Matches(text string) []string {
	hits := m.hits(text)
	if len(hits) == 0 {
		return nil
	}
	found := make([]bool, len(m.keywords))
	for _, idx := range hits {
		if idx >= 0 && idx < len(found) {
			found[idx] = true
		}
	}
	out := make([]string, 0, len(hits))
	for i, ok := range found {
		if ok {
			out = append(out, m.keywords[i])
		}
	}
	return out
}

// Keywords returns the normalized keyword set.
func (m *Matcher) Keywords() []string {
	return append([]string(nil), m.keywords...)
}

func (m *Matcher) hits(text string) []int {
	if m == nil || m.matcher == nil || text == "" {
		return nil
	}
	return m.matcher.MatchThreadSafe([]byte(strings.ToLower(text)))
}
