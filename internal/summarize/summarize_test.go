// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-thread/internal/llm"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDirProcessesPDFs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "paper-one.pdf"), "dummy pdf content")
	writeFile(t, filepath.Join(dir, "ignore.txt"), "not a pdf")

	var reqs []llm.Request
	gen := llm.GeneratorFunc(func(_ context.Context, req llm.Request) (string, error) {
		reqs = append(reqs, req)
		return `{"Title": "Paper One"}`, nil
	})

	s := &Summarizer{Gen: gen}
	var buf bytes.Buffer
	got, err := s.Dir(context.Background(), dir, &buf)
	require.NoError(t, err)

	assert.Equal(t, []string{`{"Title": "Paper One"}`}, got)
	require.Len(t, reqs, 1)
	assert.Equal(t, []byte("dummy pdf content"), reqs[0].Document)
	assert.Equal(t, DefaultModel, reqs[0].Model)
	assert.Equal(t, SystemPrompt, reqs[0].System)
	assert.Contains(t, buf.String(), "summarizing: paper-one.pdf")
}

func TestDirOrderAndCase(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.PDF"), "b")
	writeFile(t, filepath.Join(dir, "a.pdf"), "a")
	writeFile(t, filepath.Join(dir, "c.pdf"), "c")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d.pdf"), 0o755))

	gen := llm.GeneratorFunc(func(_ context.Context, req llm.Request) (string, error) {
		if string(req.Document) == "c" {
			return "", errors.New("overloaded")
		}
		return "summary " + string(req.Document), nil
	})

	s := &Summarizer{Gen: gen, Model: "custom"}
	var buf bytes.Buffer
	got, err := s.Dir(context.Background(), dir, &buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"summary a", "summary b"}, got)
	assert.Contains(t, buf.String(), "overloaded")
}

func TestDirMissing(t *testing.T) {
	s := &Summarizer{Gen: llm.GeneratorFunc(func(context.Context, llm.Request) (string, error) {
		t.Fatal("generator should not be called")
		return "", nil
	})}
	got, err := s.Dir(context.Background(), filepath.Join(t.TempDir(), "absent"), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Empty(t, got)
}
