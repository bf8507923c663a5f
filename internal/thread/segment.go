// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package thread turns a summary record into a bounded sequence of posts.
// It splits free text into post-sized segments, normalizes bullet-style
// contribution lists, resolves the canonical paper link, and assembles the
// headline, body, rationale, contributions, and link in a fixed order.
package thread

import (
	"iter"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/paper-thread/pkg/types"
)

// Segments yields the non-blank lines of text, trimmed, with any line
// longer than limit runes cut into consecutive limit-sized chunks. Lines are
// never merged and chunk order follows the source. A limit <= 0 uses
// types.PostLimit.
func Segments(text string, limit int) iter.Seq[string] {
	if limit <= 0 {
		limit = types.PostLimit
	}
	return func(yield func(string) bool) {
		for line := range strings.SplitSeq(strings.ReplaceAll(text, "\r", ""), "\n") {
			content := strings.TrimSpace(line)
			if content == "" {
				continue
			}
			for utf8.RuneCountInString(content) > limit {
				cut := runeOffset(content, limit)
				if !yield(content[:cut]) {
					return
				}
				content = content[cut:]
			}
			if !yield(content) {
				return
			}
		}
	}
}

// Split collects Segments into a slice.
func Split(text string, limit int) []string {
	return slices.Collect(Segments(text, limit))
}

// truncate cuts s to at most limit runes.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return s[:runeOffset(s, limit)]
}

// runeOffset returns the byte offset of the n-th rune in s.
func runeOffset(s string, n int) int {
	i := 0
	for off := range s {
		if i == n {
			return off
		}
		i++
	}
	return len(s)
}
