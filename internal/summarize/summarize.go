// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize sends each downloaded PDF to the generator and collects
// the raw structured summaries it returns.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/paper-thread/internal/llm"
	"github.com/pdiddy/paper-thread/internal/logging"
)

// DefaultModel is used when the config names no summary model.
const DefaultModel = "claude-sonnet-4-5"

// SystemPrompt asks for one JSON object per paper with post-sized fields.
const SystemPrompt = `You are an expert research analyst. You will be given a full research paper as a PDF. Your task is to extract as much valuable information as possible and provide a comprehensive but concise summary formatted as a JSON object. Each field must be at most 280 characters.

Required fields:
1. Title
2. Field & Subfield
3. Key Contributions (single string with bullet-style entries)
4. Methodology
5. Strengths
6. Limitations
7. Datasets / Benchmarks
8. Results Summary
9. Why It Matters
10. Should Read Fully? (Yes/No)
11. Key Figures or Tables (optional)
`

const userPrompt = "Please analyze this research paper PDF and provide a comprehensive summary following the JSON format specified in the system instructions:"

// Summarizer turns PDFs into raw model summaries.
type Summarizer struct {
	Gen    llm.Generator
	Model  string
	Logger *slog.Logger
}

// PDFs lists the *.pdf files (case-insensitive suffix) directly under dir in
// lexical order. A missing directory yields nothing.
func PDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Dir summarizes every PDF under dir and returns the raw replies in file
// order. Files that cannot be read or summarized are reported and skipped.
func (s *Summarizer) Dir(ctx context.Context, dir string, w io.Writer) ([]string, error) {
	logger := logging.OrDefault(s.Logger)
	model := s.Model
	if model == "" {
		model = DefaultModel
	}

	paths, err := PDFs(dir)
	if err != nil {
		return nil, err
	}

	var summaries []string
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return summaries, err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("reading pdf failed", slog.String("path", path), slog.String("error", err.Error()))
			fmt.Fprintf(w, "failed:  %s (%v)\n", path, err)
			continue
		}

		fmt.Fprintf(w, "summarizing: %s\n", filepath.Base(path))
		text, err := s.Gen.Generate(ctx, llm.Request{
			Model:    model,
			System:   SystemPrompt,
			Prompt:   userPrompt,
			Document: data,
		})
		if err != nil {
			logger.Warn("summarizing pdf failed", slog.String("path", path), slog.String("error", err.Error()))
			fmt.Fprintf(w, "failed:  %s (%v)\n", path, err)
			continue
		}
		logger.Debug("summary received", slog.String("path", path), slog.Int("size", len(text)))
		summaries = append(summaries, text)
	}
	return summaries, nil
}
