// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-thread pipeline:
// schema-free summary records, judged candidates, acquired papers, threads,
// and stage configuration.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Record is a model-produced summary decoded from one JSON object. Keys are
// whatever spelling the model chose ("Title", "Why It Matters",
// "key_contributions:"), so fields are read through Lookup rather than a
// fixed struct.
type Record map[string]any

// NormalizeKey folds a key spelling to its canonical form: trimmed,
// lower-cased, with spaces replaced by underscores.
func NormalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "_")
}

// Lookup returns the value stored under the first of keys that is present.
// Each key is tried verbatim first, then against the normalized spelling of
// every key in r (in sorted order, so the choice is stable). A value is
// present when its text form is not blank.
func (r Record) Lookup(keys ...string) (any, bool) {
	var sorted []string
	for _, key := range keys {
		if v, ok := r[key]; ok && present(v) {
			return v, true
		}
		if sorted == nil {
			sorted = make([]string, 0, len(r))
			for k := range r {
				sorted = append(sorted, k)
			}
			sort.Strings(sorted)
		}
		want := NormalizeKey(key)
		for _, k := range sorted {
			if NormalizeKey(k) == want && present(r[k]) {
				return r[k], true
			}
		}
	}
	return nil, false
}

// Text returns the text form of the first present key.
func (r Record) Text(keys ...string) (string, bool) {
	v, ok := r.Lookup(keys...)
	if !ok {
		return "", false
	}
	return Stringify(v), true
}

// Int returns the first present key as an integer. Numeric strings are
// accepted since models sometimes quote scores.
func (r Record) Int(keys ...string) (int, bool) {
	v, ok := r.Lookup(keys...)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return int(f), true
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}

// Bool returns the first present key as a boolean. "true" and "yes"
// strings count as true.
func (r Record) Bool(keys ...string) bool {
	v, ok := r.Lookup(keys...)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		s := strings.ToLower(strings.TrimSpace(b))
		return s == "true" || s == "yes"
	}
	return false
}

// Stringify renders a decoded JSON value as text. Strings are returned
// verbatim; lists and objects as compact JSON without HTML escaping.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	case []any, map[string]any, []string:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(x); err != nil {
			return fmt.Sprint(x)
		}
		return strings.TrimRight(buf.String(), "\n")
	default:
		return fmt.Sprint(x)
	}
}

func present(v any) bool {
	return strings.TrimSpace(Stringify(v)) != ""
}
