package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeText prepares text for case-insensitive comparison:
//   - trims leading/trailing whitespace
//   - applies Unicode case folding
//   - compresses runs of whitespace into one space
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	// Casers are stateful; one per call.
	text = cases.Fold().String(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' || r == '\t' || r == '\n' {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteRune(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// MatchesAny reports whether the normalized term occurs in any of fields.
// An empty term matches everything.
func MatchesAny(term string, fields ...string) bool {
	needle := NormalizeText(term)
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(NormalizeText(f), needle) {
			return true
		}
	}
	return false
}
