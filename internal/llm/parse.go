// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/paper-thread/pkg/types"
)

// ErrNoJSON is returned when no JSON object can be recovered from a reply.
var ErrNoJSON = errors.New("no JSON object in model output")

// fencedPattern matches a ```json fenced block holding one object.
var fencedPattern = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

// ParseObject recovers one JSON object from raw model output. It tries, in
// order, the first ```json fenced block, the trimmed text, and the span from
// the first '{' to the last '}'. The first attempt that decodes to an object
// wins.
func ParseObject(raw string) (types.Record, error) {
	var candidates []string
	if m := fencedPattern.FindStringSubmatch(raw); m != nil {
		candidates = append(candidates, m[1])
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ErrNoJSON
	}
	candidates = append(candidates, trimmed)
	if start, end := strings.Index(trimmed, "{"), strings.LastIndex(trimmed, "}"); start >= 0 && end > start {
		candidates = append(candidates, trimmed[start:end+1])
	}

	var lastErr error
	for _, c := range candidates {
		rec, err := decodeObject(c)
		if err == nil {
			return rec, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", ErrNoJSON, lastErr)
}

// decodeObject decodes text that must hold exactly one JSON object. Numbers
// decode as json.Number.
func decodeObject(text string) (types.Record, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()
	var rec types.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("not an object")
	}
	if dec.More() {
		return nil, errors.New("trailing data after object")
	}
	return rec, nil
}
