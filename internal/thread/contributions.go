// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package thread

import (
	"encoding/json"
	"strings"

	"github.com/pdiddy/paper-thread/pkg/types"
)

// bulletMarkers are stripped from the start of each contribution line.
const bulletMarkers = "-• \t"

// ParseContributions normalizes a key-contributions value into discrete
// statements. A value may be a decoded list, a JSON array encoded as text,
// a bulleted block, or a single line of "- " separated items. Parsing never
// fails: malformed JSON falls through to the looser forms and the worst case
// is an empty list.
func ParseContributions(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		return nonEmpty(v)
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return nonEmpty(items)
	}

	text := strings.TrimSpace(types.Stringify(raw))
	if text == "" {
		return nil
	}
	if items, ok := parseJSONList(text); ok {
		return items
	}
	if strings.ContainsAny(text, "\r\n") {
		return parseLines(text)
	}
	return parseDashed(text)
}

// parseJSONList decodes text shaped like a JSON array.
func parseJSONList(text string) ([]string, bool) {
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		return nil, false
	}
	var items []any
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, false
	}
	return nonEmpty(items), true
}

// parseLines keeps each non-blank line with its bullet marker removed.
func parseLines(text string) []string {
	var out []string
	for line := range strings.SplitSeq(strings.ReplaceAll(text, "\r", ""), "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, bulletMarkers))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// parseDashed splits a single line of inline "- " bullets.
func parseDashed(text string) []string {
	var out []string
	for piece := range strings.SplitSeq(text, "- ") {
		if piece = strings.TrimSpace(piece); piece != "" {
			out = append(out, piece)
		}
	}
	return out
}

func nonEmpty(items []any) []string {
	var out []string
	for _, item := range items {
		if s := strings.TrimSpace(types.Stringify(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
