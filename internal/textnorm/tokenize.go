package textnorm

import (
	"strings"
	"unicode/utf8"
)

// minTokenRunes drops short function words and stray punctuation tokens
const minTokenRunes = 3

// Tokenize splits canonical text into its ordered token sequence, discarding
// tokens shorter than three characters.
func Tokenize(canonical string) []string {
	fields := strings.Fields(canonical)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minTokenRunes {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// TokenSet builds the distinct-token set from an ordered sequence
func TokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Sample bounds an oversized token sequence to the ceiling by uniform-stride
// subsampling: every stride-th token is kept in original order, then the
// sequence is truncated to the ceiling. Pure function of (tokens, ceiling),
// so repeated sampling of the same input is identical.
func Sample(tokens []string, ceiling int) []string {
	if ceiling <= 0 || len(tokens) <= ceiling {
		return tokens
	}

	stride := len(tokens) / ceiling
	if stride < 1 {
		stride = 1
	}

	sampled := make([]string, 0, ceiling)
	for i := 0; i < len(tokens); i += stride {
		sampled = append(sampled, tokens[i])
		if len(sampled) == ceiling {
			break
		}
	}
	return sampled
}
