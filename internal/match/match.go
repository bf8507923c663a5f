// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match re-attaches canonical identifiers to model-written summaries.
// Titles echoed by a summarization model often differ from the judged
// candidate only in punctuation, dashes, or case, so lookups compare
// normalized titles exactly and then by sequence similarity.
package match

import (
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/pdiddy/paper-thread/pkg/types"
)

// Cutoff is the minimum similarity ratio accepted by the fuzzy lookup.
const Cutoff = 0.8

// nonWord matches runs of characters that are not letters, digits, or underscore.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// NormalizeTitle strips every non-word character and lower-cases the rest.
// The result is a matching key only; it is never displayed or stored.
func NormalizeTitle(title string) string {
	return strings.ToLower(nonWord.ReplaceAllString(title, ""))
}

// Pool is the working set of not-yet-matched candidates, indexed by
// normalized title in insertion order. A successful match removes the
// candidate, so each one is attributed to at most one summary.
//
// A Pool is not safe for concurrent use.
type Pool struct {
	keys    []string
	entries map[string]types.Candidate
}

// NewPool indexes candidates by normalized title. Candidates whose title
// normalizes to nothing are left out; a later candidate with the same key
// replaces the earlier one but keeps its position.
func NewPool(candidates []types.Candidate) *Pool {
	p := &Pool{entries: make(map[string]types.Candidate, len(candidates))}
	for _, c := range candidates {
		key := NormalizeTitle(c.Title)
		if key == "" {
			continue
		}
		if _, exists := p.entries[key]; !exists {
			p.keys = append(p.keys, key)
		}
		p.entries[key] = c
	}
	return p
}

// Len returns the number of unmatched candidates.
func (p *Pool) Len() int { return len(p.keys) }

// Match resolves title to a candidate ID and removes that candidate. An
// exact normalized match wins; otherwise the remaining key with the highest
// similarity ratio is taken if it reaches Cutoff, ties going to the earlier
// key.
func (p *Pool) Match(title string) (string, bool) {
	query := NormalizeTitle(title)
	if query == "" || len(p.keys) == 0 {
		return "", false
	}

	if c, ok := p.entries[query]; ok {
		p.remove(query)
		return c.ID, true
	}

	key, ok := p.closest(query)
	if !ok {
		return "", false
	}
	c := p.entries[key]
	p.remove(key)
	return c.ID, true
}

// MatchRecord reads the record's title under any accepted spelling and
// matches it against the pool.
func MatchRecord(rec types.Record, pool *Pool) (string, bool) {
	title, ok := rec.Text("title")
	if !ok {
		return "", false
	}
	return pool.Match(title)
}

func (p *Pool) closest(query string) (string, bool) {
	q := chars(query)
	best, bestScore := "", 0.0
	for _, key := range p.keys {
		m := difflib.NewMatcher(chars(key), q)
		if m.RealQuickRatio() < Cutoff || m.QuickRatio() < Cutoff {
			continue
		}
		if score := m.Ratio(); score >= Cutoff && score > bestScore {
			best, bestScore = key, score
		}
	}
	return best, best != ""
}

func (p *Pool) remove(key string) {
	delete(p.entries, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			return
		}
	}
}

// chars splits s into one-rune strings for difflib's sequence matcher.
func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
