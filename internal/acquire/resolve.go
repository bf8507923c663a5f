// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"regexp"
	"strings"
)

// Base URLs for arXiv resolution. Declared as vars so tests can
// substitute httptest servers.
var (
	arxivPDFBase = "https://arxiv.org/pdf/"
	arxivAPIBase = "https://export.arxiv.org/api/query"
)

// arxivIDPattern finds an arXiv ID inside a bare ID, an "arXiv:" or "arxiv."
// prefixed ID, or an abs/pdf URL: "2301.07041", "2301.07041v2",
// "http://arxiv.org/abs/2301.07041v1".
var arxivIDPattern = regexp.MustCompile(`(?i)(?:^|/|arxiv[.:])(\d{4}\.\d{4,5}(?:v\d+)?)(?:\.pdf)?/?$`)

// versionPattern matches the version suffix of an arXiv ID.
var versionPattern = regexp.MustCompile(`v\d+$`)

// ExtractArxivID returns the arXiv ID, with any version suffix kept, from a
// candidate identifier. It reports false when no ID can be found.
func ExtractArxivID(identifier string) (string, bool) {
	m := arxivIDPattern.FindStringSubmatch(strings.TrimSpace(identifier))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Slug returns the filesystem-safe stem for an arXiv ID: the ID without
// its version suffix.
func Slug(arxivID string) string {
	return versionPattern.ReplaceAllString(arxivID, "")
}

// PDFURL returns the arxiv.org PDF endpoint for the ID.
func PDFURL(arxivID string) string {
	return arxivPDFBase + arxivID
}
