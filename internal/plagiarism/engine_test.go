package plagiarism

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/methkalz/edu-net-11-sub004/internal/models"
	"github.com/methkalz/edu-net-11-sub004/internal/textnorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock advances by a fixed step on every Now call, so budget behavior is
// deterministic in tests
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func newStepClock(step time.Duration) *stepClock {
	return &stepClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), step: step}
}

type fakeSource struct {
	byHash     map[string]*models.RepositoryDocument
	docs       []*models.RepositoryDocument
	hashErr    error
	listErr    error
	listCalled bool
}

func (f *fakeSource) FindByContentHash(_ context.Context, hash string, _ models.Scope) (*models.RepositoryDocument, error) {
	if f.hashErr != nil {
		return nil, f.hashErr
	}
	return f.byHash[hash], nil
}

func (f *fakeSource) ListByScope(_ context.Context, _ models.Scope) ([]*models.RepositoryDocument, error) {
	f.listCalled = true
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.docs, nil
}

const essayText = `Computer networks allow devices to exchange data over shared links. ` +
	`Routers forward packets between separate networks using routing tables. ` +
	`Switches operate at the data link layer and learn device addresses.

The transport layer provides reliable delivery through acknowledgements. ` +
	`Congestion control adjusts the sending rate to match network capacity.`

func essayRequest() *models.CompareRequest {
	return &models.CompareRequest{
		FileName:    "essay.pdf",
		Text:        essayText,
		GradeLevel:  "11",
		ProjectType: "final",
		RequesterID: "teacher-7",
		SchoolID:    "school-3",
	}
}

func repoDoc(id, text string) *models.RepositoryDocument {
	return &models.RepositoryDocument{
		ID:          id,
		DisplayName: id + ".pdf",
		Text:        text,
		GradeLevel:  "11",
		ProjectType: "final",
	}
}

func newTestEngine(t *testing.T, cfg Config, source DocumentSource, clock Clock) *Engine {
	t.Helper()
	engine, err := NewEngine(cfg, source, clock)
	require.NoError(t, err)
	return engine
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.Fuzzy = 0.9

	_, err := NewEngine(cfg, &fakeSource{}, nil)
	assert.Error(t, err)
}

func TestCompareRejectsOversizedInput(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig(), &fakeSource{}, newStepClock(time.Millisecond))

	req := essayRequest()
	req.WordCount = 500001

	_, err := engine.Compare(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputTooLarge))
}

func TestCompareExactHashShortCircuit(t *testing.T) {
	canonical := textnorm.Normalize(essayText)
	hash, err := textnorm.ContentHash(canonical)
	require.NoError(t, err)

	matched := repoDoc("doc-42", canonical)
	source := &fakeSource{byHash: map[string]*models.RepositoryDocument{hash: matched}}
	engine := newTestEngine(t, DefaultConfig(), source, newStepClock(time.Millisecond))

	result, err := engine.Compare(context.Background(), essayRequest())
	require.NoError(t, err)

	assert.False(t, source.listCalled, "metric suite must not run on an exact match")
	assert.Equal(t, models.MethodHashExactMatch, result.AlgorithmUsed)
	assert.Equal(t, models.StatusFlagged, result.Status)
	assert.True(t, result.ReviewRequired)
	assert.Equal(t, 1.0, result.MaxSimilarityScore)
	assert.Equal(t, 1, result.TotalMatchesFound)

	require.Len(t, result.Matches, 1)
	match := result.Matches[0]
	assert.Equal(t, "doc-42", match.MatchedID)
	assert.Equal(t, 1.0, match.SimilarityScore)
	assert.Equal(t, 1.0, match.FuzzyScore)
	assert.True(t, match.Flagged)
}

func TestCompareEmptyScopeIsSafe(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig(), &fakeSource{}, newStepClock(time.Millisecond))

	result, err := engine.Compare(context.Background(), essayRequest())
	require.NoError(t, err)

	assert.Equal(t, models.StatusSafe, result.Status)
	assert.False(t, result.ReviewRequired)
	assert.Empty(t, result.Matches)
	assert.Equal(t, 0, result.TotalFilesCompared)
	assert.Equal(t, 0.0, result.MaxSimilarityScore)
	assert.NotEmpty(t, result.ContentHash)
}

func TestCompareRanksIdenticalCandidateFirst(t *testing.T) {
	identical := repoDoc("doc-copy", essayText)
	unrelated := repoDoc("doc-other", "Short note.")
	source := &fakeSource{docs: []*models.RepositoryDocument{unrelated, identical}}

	engine := newTestEngine(t, DefaultConfig(), source, newStepClock(time.Millisecond))

	result, err := engine.Compare(context.Background(), essayRequest())
	require.NoError(t, err)

	assert.Equal(t, models.StatusFlagged, result.Status)
	assert.Equal(t, 2, result.TotalFilesCompared)
	assert.Equal(t, 1.0, result.MaxSimilarityScore)
	assert.GreaterOrEqual(t, result.HighRiskMatches, 1)

	require.NotEmpty(t, result.Matches)
	top := result.Matches[0]
	assert.Equal(t, "doc-copy", top.MatchedID)
	assert.Equal(t, models.MethodOptimizedHybrid, top.Method)
	assert.True(t, top.Flagged)
}

func TestCompareRetainsTopFiveButCountsAll(t *testing.T) {
	var docs []*models.RepositoryDocument
	for i := 0; i < 7; i++ {
		docs = append(docs, repoDoc(fmt.Sprintf("doc-%d", i), essayText))
	}
	source := &fakeSource{docs: docs}
	engine := newTestEngine(t, DefaultConfig(), source, newStepClock(time.Millisecond))

	result, err := engine.Compare(context.Background(), essayRequest())
	require.NoError(t, err)

	assert.Len(t, result.Matches, MaxRetainedMatches)
	assert.Equal(t, 7, result.TotalMatchesFound)
	assert.Equal(t, 7, result.TotalFilesCompared)
	assert.Equal(t, 7, result.HighRiskMatches)
}

func TestCompareSkipsFailingCandidate(t *testing.T) {
	broken := repoDoc("doc-broken", "") // no extracted text
	identical := repoDoc("doc-copy", essayText)
	source := &fakeSource{docs: []*models.RepositoryDocument{broken, identical}}

	engine := newTestEngine(t, DefaultConfig(), source, newStepClock(time.Millisecond))

	result, err := engine.Compare(context.Background(), essayRequest())
	require.NoError(t, err)

	// The broken candidate is skipped, not fatal, and does not dilute the
	// average
	assert.Equal(t, 1, result.TotalFilesCompared)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "doc-copy", result.Matches[0].MatchedID)
}

func TestCompareBudgetExhaustionReturnsPartialResults(t *testing.T) {
	var docs []*models.RepositoryDocument
	for i := 0; i < 4; i++ {
		docs = append(docs, repoDoc(fmt.Sprintf("doc-%d", i), essayText))
	}
	source := &fakeSource{docs: docs}

	// Budget of 25s with a clock that jumps 10s per reading: the loop admits
	// two candidates, then sees the deadline passed
	cfg := DefaultConfig()
	engine := newTestEngine(t, cfg, source, newStepClock(10*time.Second))

	result, err := engine.Compare(context.Background(), essayRequest())
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalFilesCompared)
	assert.Equal(t, 2, result.TotalMatchesFound)
	assert.Len(t, result.Matches, 2)
	assert.Equal(t, models.StatusFlagged, result.Status)
}

func TestCompareUnrelatedCandidateIsSafe(t *testing.T) {
	unrelated := repoDoc("doc-other", `Medieval agriculture relied on crop rotation across open fields. `+
		`Oxen pulled wooden ploughs through heavy clay soil every spring season.`)
	source := &fakeSource{docs: []*models.RepositoryDocument{unrelated}}
	engine := newTestEngine(t, DefaultConfig(), source, newStepClock(time.Millisecond))

	result, err := engine.Compare(context.Background(), essayRequest())
	require.NoError(t, err)

	assert.Equal(t, models.StatusSafe, result.Status)
	assert.Empty(t, result.Matches)
	assert.Equal(t, 0, result.TotalMatchesFound)
	assert.Equal(t, 1, result.TotalFilesCompared)
}

func TestCompareShuffledPermutationLandsInMidBand(t *testing.T) {
	// Same token multiset in reversed order: jaccard stays at 1.0 while the
	// sequence score collapses, which is what separates reuse of wording from
	// reuse of phrasing
	words := strings.Fields(textnorm.Normalize(essayText))
	reversed := make([]string, len(words))
	for i, w := range words {
		reversed[len(words)-1-i] = w
	}
	shuffled := repoDoc("doc-shuffled", strings.Join(reversed, " "))
	source := &fakeSource{docs: []*models.RepositoryDocument{shuffled}}

	engine := newTestEngine(t, DefaultConfig(), source, newStepClock(time.Millisecond))

	result, err := engine.Compare(context.Background(), essayRequest())
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	match := result.Matches[0]
	assert.InDelta(t, 1.0, match.JaccardScore, 0.001)
	assert.Less(t, match.SequenceScore, match.JaccardScore)
	assert.Greater(t, result.MaxSimilarityScore, 0.30)
	assert.Less(t, result.MaxSimilarityScore, 1.0)
}

func TestCompareSamplingIsDeterministic(t *testing.T) {
	// Enough tokens to exceed the lowered ceiling and trigger stride sampling
	var sb strings.Builder
	for i := 0; i < 3000; i++ {
		sb.WriteString(fmt.Sprintf("token%04d ", i%701))
	}
	candidate := repoDoc("doc-long", sb.String())

	cfg := DefaultConfig()
	cfg.TokenCeiling = 500

	req := essayRequest()
	req.Text = sb.String()

	var results []*models.ComparisonResult
	for run := 0; run < 2; run++ {
		source := &fakeSource{docs: []*models.RepositoryDocument{candidate}}
		engine := newTestEngine(t, cfg, source, newStepClock(time.Millisecond))

		result, err := engine.Compare(context.Background(), req)
		require.NoError(t, err)
		results = append(results, result)
	}

	assert.Equal(t, results[0].ContentHash, results[1].ContentHash)
	assert.Equal(t, results[0].MaxSimilarityScore, results[1].MaxSimilarityScore)
	assert.Equal(t, results[0].Status, results[1].Status)
	require.Equal(t, len(results[0].Matches), len(results[1].Matches))
	if len(results[0].Matches) > 0 {
		assert.Equal(t, results[0].Matches[0], results[1].Matches[0])
	}
}

func TestCompareRepositoryErrorIsFatal(t *testing.T) {
	source := &fakeSource{listErr: errors.New("connection reset")}
	engine := newTestEngine(t, DefaultConfig(), source, newStepClock(time.Millisecond))

	_, err := engine.Compare(context.Background(), essayRequest())
	assert.Error(t, err)
}

func TestCompareUsesProvidedContentHash(t *testing.T) {
	matched := repoDoc("doc-5", "unrelated stored text")
	source := &fakeSource{byHash: map[string]*models.RepositoryDocument{"precomputed-hash": matched}}
	engine := newTestEngine(t, DefaultConfig(), source, newStepClock(time.Millisecond))

	req := essayRequest()
	req.ContentHash = "precomputed-hash"

	result, err := engine.Compare(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "precomputed-hash", result.ContentHash)
	assert.Equal(t, models.MethodHashExactMatch, result.AlgorithmUsed)
}

func TestCompareResultCarriesRequestIdentity(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig(), &fakeSource{}, newStepClock(time.Millisecond))

	result, err := engine.Compare(context.Background(), essayRequest())
	require.NoError(t, err)

	assert.Equal(t, "essay.pdf", result.FileName)
	assert.Equal(t, "11", result.GradeLevel)
	assert.Equal(t, "final", result.ProjectType)
	assert.Equal(t, "teacher-7", result.RequesterID)
	assert.Equal(t, "school-3", result.SchoolID)
	assert.GreaterOrEqual(t, result.ProcessingTimeMs, int64(0))
}
