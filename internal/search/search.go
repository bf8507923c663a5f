// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search discovers newly published papers.
package search

import (
	"context"
	"strings"
	"time"

	"github.com/pdiddy/paper-thread/pkg/types"
)

// DefaultCategories are the arXiv categories watched when none are configured.
var DefaultCategories = []string{"cs.LG", "cs.AI", "stat.ML", "cs.CV", "cs.NE"}

// DefaultMaxResults is the number of newest submissions requested per run.
const DefaultMaxResults = 3

// Source yields the papers published on one UTC day.
type Source interface {
	Recent(ctx context.Context, cfg types.SearchConfig, day time.Time) ([]types.Paper, error)
}

// CategoryQuery ORs the categories into an arXiv search_query expression
// ("cat:cs.LG OR cat:cs.AI").
func CategoryQuery(categories []string) string {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	parts := make([]string, 0, len(categories))
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, "cat:"+c)
		}
	}
	return strings.Join(parts, " OR ")
}

// Yesterday returns the UTC calendar day before now.
func Yesterday(now time.Time) time.Time {
	y, m, d := now.UTC().AddDate(0, 0, -1).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
