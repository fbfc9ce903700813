package plagiarism

import (
	"sort"

	"github.com/methkalz/edu-net-11-sub004/internal/models"
	"github.com/methkalz/edu-net-11-sub004/internal/textnorm"
)

// pageSentence is one sentence with its page of origin and canonical form
type pageSentence struct {
	page      int
	raw       string
	canonical string
	tokens    int
}

func splitPages(pages []models.PageText) []pageSentence {
	var out []pageSentence
	for _, p := range pages {
		for _, s := range textnorm.Sentences(p.Text) {
			canonical := textnorm.Normalize(s)
			out = append(out, pageSentence{
				page:      p.Page,
				raw:       s,
				canonical: canonical,
				tokens:    len(textnorm.Tokenize(canonical)),
			})
		}
	}
	return out
}

// MatchSegments evaluates every submission sentence against every candidate
// sentence and keeps pairs whose fuzzy score clears the sentence threshold.
// Returns at most MaxSegmentsPerMatch segments sorted descending by
// similarity, plus the coverage fraction: the token mass of matched
// submission sentences over the submission token count. Quadratic in sentence
// counts, which is why callers gate it behind the segment threshold.
func MatchSegments(sub *models.SubmittedDocument, candidatePages []models.PageText) ([]models.MatchedSegment, float64) {
	subSentences := splitPages(sub.Pages)
	candSentences := splitPages(candidatePages)
	if len(subSentences) == 0 || len(candSentences) == 0 {
		return nil, 0.0
	}

	var segments []models.MatchedSegment
	matchedTokens := 0
	matchedSub := make(map[int]bool)

	for i, ss := range subSentences {
		for _, cs := range candSentences {
			score := FuzzyRatio(ss.canonical, cs.canonical)
			if score <= sentencePairThreshold {
				continue
			}

			segments = append(segments, models.MatchedSegment{
				SourceSentence:  ss.raw,
				MatchedSentence: cs.raw,
				SourcePage:      ss.page,
				MatchedPage:     cs.page,
				Similarity:      score,
			})

			if !matchedSub[i] {
				matchedSub[i] = true
				matchedTokens += ss.tokens
			}
		}
	}

	sort.Slice(segments, func(i, j int) bool {
		return segments[i].Similarity > segments[j].Similarity
	})
	if len(segments) > MaxSegmentsPerMatch {
		segments = segments[:MaxSegmentsPerMatch]
	}

	coverage := 0.0
	if sub.TokenCount > 0 {
		coverage = float64(matchedTokens) / float64(sub.TokenCount)
		if coverage > 1.0 {
			coverage = 1.0
		}
	}

	return segments, coverage
}
