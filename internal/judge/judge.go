// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package judge scores paper abstracts against the reader's interest profile
// and keeps the ones worth reading.
package judge

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/pdiddy/paper-thread/internal/llm"
	"github.com/pdiddy/paper-thread/internal/logging"
	"github.com/pdiddy/paper-thread/pkg/types"
)

// DefaultModel is used when the config names no judge model.
const DefaultModel = "claude-haiku-4-5"

const rule = "--------------------------------------------------"

// Judge asks the generator for one relevance verdict per paper.
type Judge struct {
	Gen       llm.Generator
	Model     string
	Interests Interests
	Logger    *slog.Logger
}

// Papers judges each paper in order and returns the ones marked should_read,
// sorted by relevance score, highest first. Ties keep arrival order. Papers
// whose verdict cannot be obtained or parsed are logged and skipped.
func (j *Judge) Papers(ctx context.Context, papers []types.Paper, w io.Writer) ([]types.Candidate, error) {
	logger := logging.OrDefault(j.Logger)
	model := j.Model
	if model == "" {
		model = DefaultModel
	}

	system, err := renderSystemPrompt(j.Interests)
	if err != nil {
		return nil, err
	}

	var selected []types.Candidate
	for _, p := range papers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		prompt, err := renderPaperPrompt(p)
		if err != nil {
			return nil, err
		}

		raw, err := j.Gen.Generate(ctx, llm.Request{Model: model, System: system, Prompt: prompt})
		if err != nil {
			logger.Warn("judging paper failed", slog.String("title", p.Title), slog.String("error", err.Error()))
			fmt.Fprintf(w, "failed:  %s (%v)\n", p.Title, err)
			continue
		}

		rec, err := llm.ParseObject(raw)
		if err != nil {
			logger.Warn("error parsing response for paper",
				slog.String("title", p.Title),
				slog.String("error", err.Error()),
				slog.String("raw", preview(raw, 200)))
			fmt.Fprintf(w, "Error parsing response for paper: %s\n", p.Title)
			continue
		}

		c := types.CandidateFromRecord(rec)
		fmt.Fprintln(w, rule)
		if c.ShouldRead {
			if c.Title == "" {
				c.Title = p.Title
			}
			if c.ID == "" {
				c.ID = p.EntryID
			}
			selected = append(selected, c)
			fmt.Fprintf(w, "%s, %s\n", c.Title, c.ID)
			fmt.Fprintf(w, "Score: %d/10\n", c.RelevanceScore)
			fmt.Fprintf(w, "Summary: %s\n", c.OneSentenceSummary)
		} else {
			title := c.Title
			if title == "" {
				title = p.Title
			}
			reasoning := c.Reasoning
			if reasoning == "" {
				reasoning = "No reasoning provided."
			}
			fmt.Fprintf(w, "Skipped: %s\n", title)
			fmt.Fprintf(w, "Reasoning: %s\n", reasoning)
		}
	}
	fmt.Fprintln(w, rule)

	slices.SortStableFunc(selected, func(a, b types.Candidate) int {
		return b.RelevanceScore - a.RelevanceScore
	})
	return selected, nil
}

func preview(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
