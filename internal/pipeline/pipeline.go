// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the daily flow: discover yesterday's papers, judge
// them, download and summarize the selected ones, log the matched summaries,
// and publish one thread per summary.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pdiddy/paper-thread/internal/acquire"
	"github.com/pdiddy/paper-thread/internal/logging"
	"github.com/pdiddy/paper-thread/internal/post"
	"github.com/pdiddy/paper-thread/internal/search"
	"github.com/pdiddy/paper-thread/internal/summarylog"
	"github.com/pdiddy/paper-thread/pkg/types"
)

// Judge selects the papers worth reading.
type Judge interface {
	Papers(ctx context.Context, papers []types.Paper, w io.Writer) ([]types.Candidate, error)
}

// Acquirer downloads the selected papers into Dir and removes them again.
type Acquirer interface {
	Download(ctx context.Context, candidates []types.Candidate, w io.Writer) acquire.BatchResult
	Dir() string
	Cleanup(w io.Writer) int
}

// Summarizer produces one raw summary per PDF in a directory.
type Summarizer interface {
	Dir(ctx context.Context, dir string, w io.Writer) ([]string, error)
}

// Deps are the collaborators of one run. Poster and History may be nil on a
// dry run; History may be nil on any run.
type Deps struct {
	Source     search.Source
	Judge      Judge
	Acquirer   Acquirer
	Summarizer Summarizer
	Poster     post.Client
	History    History
	Logger     *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Run executes one daily pass. An empty search result or an empty selection
// ends the run early without error. Downloaded files are removed before Run
// returns.
func Run(ctx context.Context, deps Deps, cfg types.PipelineConfig, w io.Writer) error {
	logger := logging.OrDefault(deps.Logger)
	if !cfg.Post.DryRun && deps.Poster == nil {
		return errors.New("no posting client configured")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	day := search.Yesterday(now())
	papers, err := deps.Source.Recent(ctx, cfg.Search, day)
	if err != nil {
		return fmt.Errorf("searching papers: %w", err)
	}
	fmt.Fprintf(w, "Found %d papers published %s.\n\n", len(papers), day.Format(time.DateOnly))
	if len(papers) == 0 {
		fmt.Fprintln(w, "No machine learning papers found for yesterday")
		return nil
	}

	candidates, err := deps.Judge.Papers(ctx, papers, w)
	if err != nil {
		return fmt.Errorf("judging papers: %w", err)
	}
	if len(candidates) == 0 {
		fmt.Fprintln(w, "No papers selected for reading.")
		return nil
	}
	logger.Info("papers selected", slog.Int("count", len(candidates)))

	defer deps.Acquirer.Cleanup(w)

	batch := deps.Acquirer.Download(ctx, candidates, w)
	if batch.HasFailures() {
		logger.Warn("some downloads failed", slog.Int("failed", batch.Failed), slog.Int("total", batch.Total()))
	}

	summaries, err := deps.Summarizer.Dir(ctx, deps.Acquirer.Dir(), w)
	if err != nil {
		return fmt.Errorf("summarizing papers: %w", err)
	}

	log := summarylog.Open(cfg.LogPath)
	records, err := ParseSummaries(summaries, candidates, log, logger)
	if err != nil {
		return err
	}

	result := Publish(ctx, records, deps.Poster, deps.History, PublishOptions{
		DryRun: cfg.Post.DryRun,
		Logger: logger,
	}, w)
	fmt.Fprintf(w, "\nPublish summary: %d posted, %d previewed, %d skipped, %d duplicate, %d failed (total: %d)\n",
		result.Posted, result.Previewed, result.Skipped, result.Duplicates, result.Failed, result.Total())
	return nil
}
