package plagiarism

import (
	"fmt"
	"strings"
	"testing"

	"github.com/methkalz/edu-net-11-sub004/internal/models"
	"github.com/methkalz/edu-net-11-sub004/internal/textnorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submissionFromPages(pages []models.PageText) *models.SubmittedDocument {
	var raw strings.Builder
	for _, p := range pages {
		raw.WriteString(p.Text)
		raw.WriteString("\n")
	}
	canonical := textnorm.Normalize(raw.String())
	tokens := textnorm.Tokenize(canonical)

	return &models.SubmittedDocument{
		RawText:       raw.String(),
		CanonicalText: canonical,
		Tokens:        tokens,
		TokenSet:      textnorm.TokenSet(tokens),
		TokenCount:    len(tokens),
		Pages:         pages,
	}
}

func TestMatchSegmentsFindsCopiedSentence(t *testing.T) {
	copied := "Computer networks allow devices to exchange data over shared physical links."
	sub := submissionFromPages([]models.PageText{
		{Page: 1, Text: copied + " My own independent sentence about routing tables and their use."},
	})
	candPages := []models.PageText{
		{Page: 3, Text: "An unrelated opening statement about something else entirely. " + copied},
	}

	segments, coverage := MatchSegments(sub, candPages)
	require.Len(t, segments, 1)

	seg := segments[0]
	assert.Equal(t, 1, seg.SourcePage)
	assert.Equal(t, 3, seg.MatchedPage)
	assert.Greater(t, seg.Similarity, 0.70)
	assert.Contains(t, seg.SourceSentence, "Computer networks")

	assert.Greater(t, coverage, 0.0)
	assert.LessOrEqual(t, coverage, 1.0)
}

func TestMatchSegmentsNoPairsBelowThreshold(t *testing.T) {
	sub := submissionFromPages([]models.PageText{
		{Page: 1, Text: "A sentence about network switches and their forwarding behavior."},
	})
	candPages := []models.PageText{
		{Page: 1, Text: "An essay concerning medieval agriculture and crop rotation cycles."},
	}

	segments, coverage := MatchSegments(sub, candPages)
	assert.Empty(t, segments)
	assert.Equal(t, 0.0, coverage)
}

func TestMatchSegmentsEmptyPages(t *testing.T) {
	sub := submissionFromPages(nil)

	segments, coverage := MatchSegments(sub, []models.PageText{{Page: 1, Text: "Some candidate sentence here."}})
	assert.Nil(t, segments)
	assert.Equal(t, 0.0, coverage)
}

func TestMatchSegmentsCapsAndSorts(t *testing.T) {
	// 25 identical sentence pairs produce 25x25 perfect matches; the output
	// must stay capped and sorted descending
	var sb strings.Builder
	for i := 0; i < 25; i++ {
		sb.WriteString(fmt.Sprintf("This repeated sentence number %d is long enough to survive filtering. ", i))
	}
	pages := []models.PageText{{Page: 1, Text: sb.String()}}

	sub := submissionFromPages(pages)
	segments, coverage := MatchSegments(sub, pages)

	assert.Len(t, segments, MaxSegmentsPerMatch)
	for i := 1; i < len(segments); i++ {
		assert.GreaterOrEqual(t, segments[i-1].Similarity, segments[i].Similarity)
	}
	assert.InDelta(t, 1.0, coverage, 0.001)
}

func TestMatchSegmentsCoverageCountsEachSourceSentenceOnce(t *testing.T) {
	copied := "Routing protocols distribute reachability information between autonomous systems."
	sub := submissionFromPages([]models.PageText{{Page: 1, Text: copied}})

	// The same sentence appears twice in the candidate; coverage must not
	// double-count the single source sentence
	candPages := []models.PageText{
		{Page: 1, Text: copied},
		{Page: 2, Text: copied},
	}

	segments, coverage := MatchSegments(sub, candPages)
	assert.Len(t, segments, 2)
	assert.InDelta(t, 1.0, coverage, 0.001)
}
