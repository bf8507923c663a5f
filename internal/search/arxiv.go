// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/paper-thread/internal/httputil"
	"github.com/pdiddy/paper-thread/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivSource queries the arXiv API for the newest submissions.
type ArxivSource struct {
	Client *http.Client
	Logger *slog.Logger
}

// Recent requests the newest submissions in the configured categories,
// sorted by submission date, and keeps those published on day (UTC).
func (s *ArxivSource) Recent(ctx context.Context, cfg types.SearchConfig, day time.Time) ([]types.Paper, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	params := url.Values{}
	params.Set("search_query", CategoryQuery(cfg.Categories))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, arxivAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var papers []types.Paper
	for _, entry := range feed.Entries {
		p, ok := entry.paper()
		if !ok || !sameDay(p.Date, day) {
			continue
		}
		papers = append(papers, p)
	}

	if s.Logger != nil {
		s.Logger.Info("arXiv search complete",
			slog.Int("returned", len(feed.Entries)),
			slog.Int("published", len(papers)),
			slog.String("day", day.Format(time.DateOnly)))
	}
	return papers, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID              string        `xml:"id"`
	Title           string        `xml:"title"`
	Summary         string        `xml:"summary"`
	Published       string        `xml:"published"`
	Authors         []arxivAuthor `xml:"author"`
	PrimaryCategory arxivCategory `xml:"http://arxiv.org/schemas/atom primary_category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

func (e arxivEntry) paper() (types.Paper, bool) {
	id := extractArxivID(e.ID)
	if id == "" {
		return types.Paper{}, false
	}
	published, err := time.Parse(time.RFC3339, strings.TrimSpace(e.Published))
	if err != nil {
		return types.Paper{}, false
	}

	p := types.Paper{
		ID:              id,
		EntryID:         strings.TrimSpace(e.ID),
		Title:           collapseSpace(e.Title),
		Abstract:        strings.TrimSpace(e.Summary),
		Date:            published,
		PrimaryCategory: e.PrimaryCategory.Term,
	}
	for _, a := range e.Authors {
		p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
	}
	return p, true
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := strings.TrimSpace(idURL[idx+len(prefix):])

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}

// collapseSpace joins the line-wrapped titles arXiv returns.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
