// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Candidate is a paper that passed relevance judgment. Its Title and ID form
// the pool that summaries are matched back against.
type Candidate struct {
	// Title is the paper title as echoed by the judging model.
	Title string `json:"title" yaml:"title"`

	// ID is the canonical source identifier (e.g. "http://arxiv.org/abs/2301.07041v1").
	ID string `json:"id" yaml:"id"`

	ShouldRead         bool     `json:"should_read" yaml:"should_read"`
	RelevanceScore     int      `json:"relevance_score" yaml:"relevance_score"`
	OneSentenceSummary string   `json:"one_sentence_summary" yaml:"one_sentence_summary"`
	Reasoning          string   `json:"reasoning" yaml:"reasoning"`
	Keywords           []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// CandidateFromRecord reads a judgment record, tolerating the key spelling
// and typing drift of model output.
func CandidateFromRecord(r Record) Candidate {
	c := Candidate{
		ShouldRead: r.Bool("should_read"),
	}
	c.Title, _ = r.Text("title")
	c.ID, _ = r.Text("id", "entry_id")
	c.RelevanceScore, _ = r.Int("relevance_score")
	c.OneSentenceSummary, _ = r.Text("one_sentence_summary")
	c.Reasoning, _ = r.Text("reasoning")

	if v, ok := r.Lookup("keywords"); ok {
		switch kw := v.(type) {
		case []any:
			for _, k := range kw {
				if s := Stringify(k); s != "" {
					c.Keywords = append(c.Keywords, s)
				}
			}
		case string:
			c.Keywords = []string{kw}
		}
	}
	return c
}
