// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/pdiddy/paper-thread/internal/llm"
	"github.com/pdiddy/paper-thread/internal/logging"
	"github.com/pdiddy/paper-thread/internal/match"
	"github.com/pdiddy/paper-thread/internal/summarylog"
	"github.com/pdiddy/paper-thread/pkg/types"
)

// ParseSummaries turns raw model summaries into records. Each summary is
// coerced to a JSON object, matched by title against the candidates (each
// candidate is used at most once), tagged with the matched arxiv_id, and
// appended to the log. Summaries that hold no JSON object are logged and
// skipped, so the log is only written when at least one record parses.
func ParseSummaries(raw []string, candidates []types.Candidate, log *summarylog.Log, logger *slog.Logger) ([]types.Record, error) {
	logger = logging.OrDefault(logger)
	pool := match.NewPool(candidates)

	var records []types.Record
	for i, text := range raw {
		rec, err := llm.ParseObject(text)
		if err != nil {
			logger.Warn("error parsing summary", slog.Int("index", i), slog.String("error", err.Error()))
			continue
		}

		if id, ok := match.MatchRecord(rec, pool); ok {
			rec["arxiv_id"] = id
		} else {
			title, _ := rec.Text("title")
			logger.Info("summary matched no candidate", slog.String("title", title))
		}

		if err := log.Append(rec); err != nil {
			return records, fmt.Errorf("writing summary log %s: %w", log.Path(), err)
		}
		records = append(records, rec)
	}
	return records, nil
}
