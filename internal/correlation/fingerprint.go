// Package correlation groups raw items into topics by a lexical
// fingerprint of their titles.
package correlation

import (
	"regexp"
	"strings"
)

var (
	pipeSuffix   = regexp.MustCompile(`\s*\|.*$`)
	dashSuffix   = regexp.MustCompile(`\s*-\s*[^-]+$`)
	nonAlnum     = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Fingerprint reduces a title to its clustering key: lower-cased, cut at
// the first "|", a trailing " - clause" removed, punctuation replaced by
// spaces and whitespace collapsed.
//
//	"Fed Raises Rates | CNBC"            -> "fed raises rates"
//	"AI Agents Transform X - TechCrunch" -> "ai agents transform x"
func Fingerprint(title string) string {
	s := strings.ToLower(title)
	s = pipeSuffix.ReplaceAllString(s, "")
	s = dashSuffix.ReplaceAllString(s, "")
	s = nonAlnum.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
