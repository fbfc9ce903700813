package plagiarism

import "strings"

// window sizes tried by the sequence scorer, longest first
const (
	maxWindowSize = 10
	minWindowSize = 3
)

// SequenceOverlap measures ordered multi-length phrase reuse. For window
// sizes 10 down to 3 it collects every contiguous phrase of the candidate and
// accumulates the window size for each submission phrase found there. The
// total matched length is normalized by the shorter token sequence and
// clamped to 1.0.
func SequenceOverlap(tokensA, tokensB []string) float64 {
	minLen := len(tokensA)
	if len(tokensB) < minLen {
		minLen = len(tokensB)
	}
	if minLen == 0 {
		return 0.0
	}

	matched := 0
	for size := maxWindowSize; size >= minWindowSize; size-- {
		if size > len(tokensA) || size > len(tokensB) {
			continue
		}

		phrasesB := phraseSet(tokensB, size)
		for i := 0; i+size <= len(tokensA); i++ {
			phrase := strings.Join(tokensA[i:i+size], " ")
			if _, ok := phrasesB[phrase]; ok {
				matched += size
			}
		}
	}

	score := float64(matched) / float64(minLen)
	if score > 1.0 {
		return 1.0
	}
	return score
}

// phraseSet collects all contiguous windows of the given size
func phraseSet(tokens []string, size int) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for i := 0; i+size <= len(tokens); i++ {
		set[strings.Join(tokens[i:i+size], " ")] = struct{}{}
	}
	return set
}
