// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarylog persists matched summary records as one JSON array
// document. The log is append-only; every write replaces the document with
// the full collection through a temp file and rename, so an interrupted run
// leaves the document as of the last completed append.
package summarylog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/paper-thread/pkg/types"
)

// Log is an append-only collection of summary records backed by a file.
// Elements already in the document that are not records are kept in place
// and written back on every flush.
type Log struct {
	path  string
	items []any
}

// Open loads the document at path. A missing, unreadable, or malformed
// document opens as an empty log; the next write replaces it.
func Open(path string) *Log {
	return &Log{path: path, items: ReadDocument(path)}
}

// ReadDocument reads every element of the collection stored at path, in
// order. A top-level document that is not an array is returned as a
// one-element collection. Objects decode as types.Record and numbers keep
// their source text. Any read or decode failure yields an empty collection.
func ReadDocument(path string) []any {
	data, err := os.ReadFile(path)
	if err != nil {
		return []any{}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return []any{}
	}
	if _, err := dec.Token(); err != io.EOF {
		return []any{}
	}

	switch v := doc.(type) {
	case []any:
		for i, item := range v {
			v[i] = asRecord(item)
		}
		return v
	case nil:
		return []any{nil}
	default:
		return []any{asRecord(v)}
	}
}

// Load reads the records stored at path, skipping any elements of the
// collection that are not objects.
func Load(path string) []types.Record {
	return records(ReadDocument(path))
}

// Path returns the backing document path.
func (l *Log) Path() string { return l.path }

// Entries returns the records in append order.
func (l *Log) Entries() []types.Record { return records(l.items) }

// Len returns the number of elements in the collection, records or not.
func (l *Log) Len() int { return len(l.items) }

// Append adds rec and rewrites the document.
func (l *Log) Append(rec types.Record) error {
	l.items = append(l.items, rec)
	return l.Flush()
}

// Flush writes the full collection to the backing document.
func (l *Log) Flush() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	items := l.items
	if items == nil {
		items = []any{}
	}
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encoding summary log: %w", err)
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".summarylog-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(buf.Bytes())
	chmodErr := tmpFile.Chmod(fileMode(l.path))
	syncErr := tmpFile.Sync()
	closeErr := tmpFile.Close()
	for _, e := range []error{writeErr, chmodErr, syncErr, closeErr} {
		if e != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("writing summary log: %w", e)
		}
	}

	if err := os.Rename(tmpPath, l.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// fileMode keeps the permissions of an existing document; new documents are
// world-readable.
func fileMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}

func asRecord(item any) any {
	if obj, ok := item.(map[string]any); ok {
		return types.Record(obj)
	}
	return item
}

func records(items []any) []types.Record {
	out := make([]types.Record, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(types.Record); ok {
			out = append(out, rec)
		}
	}
	return out
}
