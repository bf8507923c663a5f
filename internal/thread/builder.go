// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package thread

import (
	"strings"

	"github.com/pdiddy/paper-thread/pkg/types"
)

// Field priority lists. Only the first present key of each list is used.
var (
	titleKeys        = []string{"title"}
	fieldKeys        = []string{"field_&_subfield", "field_and_subfield", "field"}
	bodyKeys         = []string{"results_summary", "methodology", "one_sentence_summary", "summary"}
	rationaleKeys    = []string{"why_it_matters", "why_it_matters?", "reasoning"}
	contributionKeys = []string{"key_contributions", "key_contributions:", "key_contributions_list"}
	linkKeys         = []string{"arxiv_id", "id", "entry_id"}
)

const untitled = "Untitled"

// Build assembles the thread for one summary record:
//
//  1. headline: title, plus " — field" when the record names one
//  2. body: the first of results_summary, methodology, one_sentence_summary, summary
//  3. rationale: the first of why_it_matters, why_it_matters?, reasoning
//  4. contributions: the first contributions field, one statement per line
//  5. link: the canonical arXiv URL when the record carries an identifier
//
// Every segment is at most types.PostLimit characters and the headline is
// always present.
func Build(rec types.Record) types.Thread {
	thread := types.Thread{headline(rec)}

	if body, ok := rec.Text(bodyKeys...); ok {
		thread = append(thread, Split(body, types.PostLimit)...)
	}

	if why, ok := rec.Text(rationaleKeys...); ok {
		thread = append(thread, Split(why, types.PostLimit)...)
	}

	if raw, ok := rec.Lookup(contributionKeys...); ok {
		if items := ParseContributions(raw); len(items) > 0 {
			thread = append(thread, Split(strings.Join(items, "\n"), types.PostLimit)...)
		}
	}

	if link, ok := Link(rec); ok {
		thread = append(thread, truncate(link, types.PostLimit))
	}

	return thread
}

// Link returns the canonical link for the record's identifier, the first of
// arxiv_id, id, entry_id.
func Link(rec types.Record) (string, bool) {
	id, ok := rec.Text(linkKeys...)
	if !ok {
		return "", false
	}
	return CanonicalLink(id)
}

func headline(rec types.Record) string {
	title, ok := rec.Text(titleKeys...)
	title = strings.TrimSpace(title)
	if !ok || title == "" {
		title = untitled
	}
	if field, ok := rec.Text(fieldKeys...); ok {
		title += " — " + strings.TrimSpace(field)
	}
	return truncate(title, types.PostLimit)
}
