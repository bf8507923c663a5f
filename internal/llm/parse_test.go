// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObject(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantTitle string
	}{
		{"plain", `{"title": "Paper High", "relevance_score": 9}`, "Paper High"},
		{"padded", "\n  {\"title\": \"Padded\"}  \n", "Padded"},
		{
			"fenced",
			"```json\n{\"title\": \"Paper High\", \"should_read\": true}\n```",
			"Paper High",
		},
		{
			"fenced with prose around",
			"Here is the summary:\n```json\n{\"Title\": \"Fenced\"}\n```\nHope it helps.",
			"Fenced",
		},
		{"prose around bare object", `Sure! {"title": "Embedded"} Let me know.`, "Embedded"},
		{"nested braces", `{"title": "Nested", "meta": {"a": 1}}`, "Nested"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseObject(tt.raw)
			require.NoError(t, err)
			title, ok := rec.Text("title")
			require.True(t, ok)
			assert.Equal(t, tt.wantTitle, title)
		})
	}
}

func TestParseObjectKeepsNumbers(t *testing.T) {
	rec, err := ParseObject(`{"relevance_score": 9, "should_read": true}`)
	require.NoError(t, err)

	assert.Equal(t, json.Number("9"), rec["relevance_score"])
	score, ok := rec.Int("relevance_score")
	require.True(t, ok)
	assert.Equal(t, 9, score)
	assert.True(t, rec.Bool("should_read"))
}

func TestParseObjectFailures(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"not-json",
		"not valid json",
		`["a", "b"]`,
		"null",
		`{"title": "unterminated"`,
	} {
		t.Run(raw, func(t *testing.T) {
			rec, err := ParseObject(raw)
			assert.Nil(t, rec)
			assert.True(t, errors.Is(err, ErrNoJSON), "got %v", err)
		})
	}
}
