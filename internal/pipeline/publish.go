// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pdiddy/paper-thread/internal/logging"
	"github.com/pdiddy/paper-thread/internal/post"
	"github.com/pdiddy/paper-thread/internal/thread"
	"github.com/pdiddy/paper-thread/pkg/types"
)

// History remembers which links have been posted across runs.
type History interface {
	Posted(ctx context.Context, link string) (bool, error)
	Record(ctx context.Context, link, title string, postIDs []string) error
}

// PublishOptions controls Publish.
type PublishOptions struct {
	// DryRun prints each thread without posting it.
	DryRun bool
	Logger *slog.Logger
}

// PublishResult holds the outcome of a publish pass.
type PublishResult struct {
	Posted     int
	Previewed  int
	Skipped    int
	Duplicates int
	Failed     int
}

// Total returns the number of records processed.
func (r PublishResult) Total() int {
	return r.Posted + r.Previewed + r.Skipped + r.Duplicates + r.Failed
}

// HasFailures reports whether any thread failed to post.
func (r PublishResult) HasFailures() bool {
	return r.Failed > 0
}

// Publish builds and prints the thread for each record, then posts it
// unless this is a dry run. Records whose link is already in hist are
// skipped. Duplicate-content rejections are reported and skipped; other
// failures are reported and the pass continues. hist may be nil.
func Publish(ctx context.Context, records []types.Record, client post.Client, hist History, opts PublishOptions, w io.Writer) PublishResult {
	logger := logging.OrDefault(opts.Logger)
	var result PublishResult

	if len(records) == 0 {
		fmt.Fprintln(w, "No data to post.")
		return result
	}

	for _, rec := range records {
		th := thread.Build(rec)
		post.Preview(w, th)

		if opts.DryRun {
			result.Previewed++
			continue
		}

		link, hasLink := thread.Link(rec)
		if hasLink && hist != nil {
			posted, err := hist.Posted(ctx, link)
			if err != nil {
				logger.Warn("history lookup failed", slog.String("link", link), slog.String("error", err.Error()))
			} else if posted {
				fmt.Fprintf(w, "skipped: %s (already posted)\n", link)
				result.Skipped++
				continue
			}
		}

		ids, err := post.Thread(ctx, client, th)
		if err != nil && len(ids) > 0 {
			// Record the posted prefix so a rerun skips this link.
			fmt.Fprintf(w, "Partially posted thread: %d of %d posts (ids: %s)\n", len(ids), len(th), strings.Join(ids, ", "))
			logger.Warn("thread partially posted",
				slog.String("headline", th.Headline()),
				slog.Any("post_ids", ids),
				slog.Int("posts", len(th)))
			if hasLink && hist != nil {
				if err := hist.Record(ctx, link, th.Headline(), ids); err != nil {
					logger.Warn("recording history failed", slog.String("link", link), slog.String("error", err.Error()))
				}
			}
		}
		switch {
		case errors.Is(err, post.ErrDuplicate):
			fmt.Fprintf(w, "Skipped duplicate content: %s...\n", preview(th.Headline(), 50))
			result.Duplicates++
			continue
		case err != nil:
			fmt.Fprintf(w, "Failed to post thread: %v\n", err)
			logger.Error("posting thread failed", slog.String("headline", th.Headline()), slog.String("error", err.Error()))
			result.Failed++
			continue
		}

		result.Posted++
		logger.Info("thread posted", slog.String("headline", th.Headline()), slog.Int("posts", len(ids)))
		if hasLink && hist != nil {
			if err := hist.Record(ctx, link, th.Headline(), ids); err != nil {
				logger.Warn("recording history failed", slog.String("link", link), slog.String("error", err.Error()))
			}
		}
	}
	return result
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
