// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarylog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-thread/pkg/types"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReadDocument(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		want    []any
		records []types.Record
	}{
		{"missing file", nil, []any{}, []types.Record{}},
		{"corrupt", ptr("{not json"), []any{}, []types.Record{}},
		{"empty file", ptr(""), []any{}, []types.Record{}},
		{"trailing data", ptr(`[{"title":"A"}] extra`), []any{}, []types.Record{}},
		{"scalar document coerced", ptr(`"hello"`), []any{"hello"}, []types.Record{}},
		{"array", ptr(`[{"title":"A"},{"title":"B"}]`),
			[]any{types.Record{"title": "A"}, types.Record{"title": "B"}},
			[]types.Record{{"title": "A"}, {"title": "B"}}},
		{"single object coerced", ptr(`{"title":"A"}`),
			[]any{types.Record{"title": "A"}},
			[]types.Record{{"title": "A"}}},
		{"non-object elements kept", ptr(`[{"title":"A"}, 3, "x"]`),
			[]any{types.Record{"title": "A"}, json.Number("3"), "x"},
			[]types.Record{{"title": "A"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "log.json")
			if tt.content != nil {
				writeFile(t, path, *tt.content)
			}
			assert.Equal(t, tt.want, ReadDocument(path))
			assert.Equal(t, tt.records, Load(path))
		})
	}
}

func TestAppend_KeepsExistingContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"scalar document", `"legacy note"`, `["legacy note",{"title":"B"}]`},
		{"mixed array", `[{"title":"A"}, "stray", 7]`, `[{"title":"A"},"stray",7,{"title":"B"}]`},
		{"large number", `[{"id": 12345678901234567890}]`, `[{"id":12345678901234567890},{"title":"B"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "log.json")
			writeFile(t, path, tt.content)

			log := Open(path)
			require.NoError(t, log.Append(types.Record{"title": "B"}))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestFlush_FileMode(t *testing.T) {
	dir := t.TempDir()

	fresh := filepath.Join(dir, "fresh.json")
	require.NoError(t, Open(fresh).Append(types.Record{"title": "A"}))
	info, err := os.Stat(fresh)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	existing := filepath.Join(dir, "existing.json")
	writeFile(t, existing, `[]`)
	require.NoError(t, os.Chmod(existing, 0o640))
	require.NoError(t, Open(existing).Append(types.Record{"title": "A"}))
	info, err = os.Stat(existing)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestAppend_RewritesWholeDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	writeFile(t, path, `[{"title":"Existing"}]`)

	log := Open(path)
	require.Equal(t, 1, log.Len())

	require.NoError(t, log.Append(types.Record{"Title": "New <paper>", "arxiv_id": "http://arxiv.org/abs/0001.00001v1"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "New <paper>", "HTML characters are not escaped")
	assert.True(t, strings.HasPrefix(string(data), "[\n    {"), "4-space indentation")

	var got []map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Existing", got[0]["title"])
	assert.Equal(t, "http://arxiv.org/abs/0001.00001v1", got[1]["arxiv_id"])
}

func TestAppend_RecoversCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	writeFile(t, path, "garbage")

	log := Open(path)
	assert.Equal(t, 0, log.Len())
	require.NoError(t, log.Append(types.Record{"title": "Fresh"}))

	assert.Equal(t, []types.Record{{"title": "Fresh"}}, Load(path))
}

func TestAppend_EachWriteIsComplete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "log.json")
	log := Open(path)

	for i, title := range []string{"one", "two", "three"} {
		require.NoError(t, log.Append(types.Record{"title": title}))

		// A fresh reader sees exactly the records appended so far.
		got := Load(path)
		require.Len(t, got, i+1)
		assert.Equal(t, title, got[i]["title"])
	}

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
	assert.Equal(t, "log.json", entries[0].Name())
}

func TestFlush_EmptyLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	require.NoError(t, Open(path).Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func ptr(s string) *string { return &s }
