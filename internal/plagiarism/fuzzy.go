package plagiarism

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// FuzzyRatio is the normalized character-level edit similarity between two
// canonical strings: 1.0 for identical strings, 0.0 for maximally dissimilar.
// Symmetric by construction.
func FuzzyRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}

	lenA := utf8.RuneCountInString(a)
	lenB := utf8.RuneCountInString(b)
	maxLen := lenA
	if lenB > maxLen {
		maxLen = lenB
	}
	if maxLen == 0 {
		return 1.0
	}

	dist := levenshtein.ComputeDistance(a, b)

	score := 1.0 - float64(dist)/float64(maxLen)
	if score < 0 {
		return 0.0
	}
	return score
}
