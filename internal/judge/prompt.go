// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package judge

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/paper-thread/pkg/types"
)

// systemPromptTmpl instructs the model to score one abstract against the
// profile and answer with a single JSON object.
var systemPromptTmpl = template.Must(template.New("judge").Parse(`You are an expert AI research assistant with deep knowledge of the machine learning landscape. Your goal is to analyze a paper's abstract based on the user's stated research interests and provide a concise, structured recommendation.

The user's interests will be provided, ranked by priority. Your analysis MUST be strictly guided by these interests:
{{.Interests}}

When rating papers, be extremely selective.

OUTPUT REQUIREMENTS (must follow exactly):
- Output EXACTLY ONE JSON object (not an array, not multiple objects).
- NO markdown, NO code fences, NO surrounding text.
- Keys (all required, none extra):
  - "title": string
  - "id": string
  - "should_read": boolean
  - "relevance_score": integer 1-10
  - "one_sentence_summary": string
  - "reasoning": string
  - "keywords": array of strings
`))

// paperPromptTmpl lists the paper fields the model judges.
var paperPromptTmpl = template.Must(template.New("paper").Parse(`{{.Title}},
{{.EntryID}},
{{.Abstract}},
{{.Authors}},
{{.PrimaryCategory}},`))

func renderSystemPrompt(in Interests) (string, error) {
	var buf bytes.Buffer
	if err := systemPromptTmpl.Execute(&buf, struct{ Interests string }{in.String()}); err != nil {
		return "", fmt.Errorf("rendering system prompt: %w", err)
	}
	return buf.String(), nil
}

func renderPaperPrompt(p types.Paper) (string, error) {
	entryID := p.EntryID
	if entryID == "" {
		entryID = p.ID
	}
	var buf bytes.Buffer
	err := paperPromptTmpl.Execute(&buf, struct {
		Title, EntryID, Abstract, Authors, PrimaryCategory string
	}{
		Title:           p.Title,
		EntryID:         entryID,
		Abstract:        p.Abstract,
		Authors:         strings.Join(p.Authors, ", "),
		PrimaryCategory: p.PrimaryCategory,
	})
	if err != nil {
		return "", fmt.Errorf("rendering paper prompt: %w", err)
	}
	return buf.String(), nil
}
