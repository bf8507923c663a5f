// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package thread

import (
	"regexp"
	"strings"
)

const absBase = "https://arxiv.org/abs/"

// versionSuffix matches a trailing arXiv version ("v2") directly after the
// digit that ends an identifier.
var versionSuffix = regexp.MustCompile(`(\d)v\d+$`)

// arxivPrefixes are stripped, with their path namespace, before the bare ID is
// rebuilt into a canonical abs URL.
var arxivPrefixes = []string{
	"www.arxiv.org/abs/", "arxiv.org/abs/",
	"www.arxiv.org/pdf/", "arxiv.org/pdf/",
	"export.arxiv.org/abs/",
}

// CanonicalLink normalizes an identifier to "https://arxiv.org/abs/<id>"
// with no version suffix. Bare IDs, "arXiv:" and "arxiv." prefixed IDs,
// http or https abs/pdf URLs all resolve to the same link. Other http(s)
// URLs are upgraded to https with any version suffix removed. It reports
// false for a blank identifier.
func CanonicalLink(id string) (string, bool) {
	s := strings.TrimSpace(id)
	if s == "" {
		return "", false
	}

	rest, hadScheme := stripScheme(s)
	lower := strings.ToLower(rest)

	isArxiv := !hadScheme
	for _, p := range arxivPrefixes {
		if strings.HasPrefix(lower, p) {
			rest = rest[len(p):]
			isArxiv = true
			break
		}
	}

	if !isArxiv {
		return "https://" + versionSuffix.ReplaceAllString(strings.TrimSuffix(rest, "/"), "$1"), true
	}

	// Collapse namespace artifacts such as "abs/arxiv.2301.07041" or "arXiv:2301.07041".
	for _, p := range []string{"arxiv.", "arxiv:"} {
		if strings.HasPrefix(strings.ToLower(rest), p) {
			rest = rest[len(p):]
		}
	}
	rest = strings.TrimSuffix(strings.TrimSuffix(rest, "/"), ".pdf")
	rest = versionSuffix.ReplaceAllString(rest, "$1")
	if rest == "" {
		return "", false
	}
	return absBase + rest, true
}

func stripScheme(s string) (string, bool) {
	lower := strings.ToLower(s)
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(lower, scheme) {
			return s[len(scheme):], true
		}
	}
	return s, false
}
