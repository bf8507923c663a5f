// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PostLimit is the maximum length of one post, in characters.
const PostLimit = 280

// Thread is the ordered sequence of posts built from one record. The first
// element is the headline; a trailing link is present when the record
// carries an identifier.
type Thread []string

// Headline returns the first post, or "" for an empty thread.
func (t Thread) Headline() string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}
