package plagiarism

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/methkalz/edu-net-11-sub004/internal/models"
	"github.com/methkalz/edu-net-11-sub004/internal/textnorm"
	"github.com/rs/zerolog/log"
)

// DocumentSource is the read-only repository snapshot the engine scans.
// Implementations must scope both lookups to the submission's grade level and
// project type.
type DocumentSource interface {
	FindByContentHash(ctx context.Context, hash string, scope models.Scope) (*models.RepositoryDocument, error)
	ListByScope(ctx context.Context, scope models.Scope) ([]*models.RepositoryDocument, error)
}

// Engine runs one comparison request end to end. It is stateless between
// invocations; a single Engine value is safe for concurrent use.
type Engine struct {
	cfg    Config
	source DocumentSource
	clock  Clock
}

func NewEngine(cfg Config, source DocumentSource, clock Clock) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Engine{cfg: cfg, source: source, clock: clock}, nil
}

// Compare decides whether the submitted document substantially duplicates any
// repository document in the same scope. Pipeline: input ceiling check, exact
// hash short-circuit, budgeted repository scan, rank, classify. Only an
// oversized input or a digest/repository failure surfaces as an error; every
// other condition yields a valid (possibly empty or partial) result.
func (e *Engine) Compare(ctx context.Context, req *models.CompareRequest) (*models.ComparisonResult, error) {
	start := e.clock.Now()

	wordCount := req.WordCount
	if wordCount == 0 {
		wordCount = len(strings.Fields(req.Text))
	}
	if wordCount > e.cfg.MaxWordCount {
		return nil, fmt.Errorf("%w: %d words (limit %d)", ErrInputTooLarge, wordCount, e.cfg.MaxWordCount)
	}

	sub, err := e.buildSubmission(req, wordCount)
	if err != nil {
		return nil, err
	}

	exact, err := e.source.FindByContentHash(ctx, sub.ContentHash, sub.Scope)
	if err != nil {
		return nil, fmt.Errorf("exact-match lookup failed: %w", err)
	}
	if exact != nil {
		log.Info().
			Str("file", sub.FileName).
			Str("matched_id", exact.ID).
			Msg("Exact hash match, bypassing metric suite")
		return e.finalizeExact(sub, exact, start), nil
	}

	candidates, err := e.source.ListByScope(ctx, sub.Scope)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository snapshot: %w", err)
	}
	if len(candidates) == 0 {
		return e.finalize(sub, nil, 0, 0, 0, start), nil
	}

	subFuzzyText := strings.Join(sub.Tokens, " ")
	deadline := start.Add(e.cfg.ScanBudget)

	var recorded []candidateRecord
	scoreSum := 0.0
	examined := 0

	for _, cand := range candidates {
		if !e.clock.Now().Before(deadline) {
			log.Warn().
				Str("file", sub.FileName).
				Int("examined", examined).
				Int("remaining", len(candidates)-examined).
				Dur("budget", e.cfg.ScanBudget).
				Msg("Scan budget exhausted, ranking partial results")
			break
		}

		rec, err := e.scoreCandidate(sub, subFuzzyText, cand)
		if err != nil {
			log.Error().Err(err).
				Str("file", sub.FileName).
				Str("candidate_id", cand.ID).
				Msg("Failed to score candidate, skipping")
			continue
		}

		examined++
		scoreSum += rec.aggregate
		if rec.aggregate > e.cfg.RecordThreshold {
			recorded = append(recorded, rec)
		}
	}

	// Rank
	sort.Slice(recorded, func(i, j int) bool {
		return recorded[i].aggregate > recorded[j].aggregate
	})

	return e.finalize(sub, recorded, scoreSum, examined, len(recorded), start), nil
}

// candidateRecord keeps the unrounded aggregate next to the output row so
// ranking and classification never depend on display rounding
type candidateRecord struct {
	score     models.CandidateScore
	pages     []models.PageText
	aggregate float64
}

func (e *Engine) buildSubmission(req *models.CompareRequest, wordCount int) (*models.SubmittedDocument, error) {
	canonical := textnorm.Normalize(req.Text)

	hash := req.ContentHash
	if hash == "" {
		var err error
		hash, err = textnorm.ContentHash(canonical)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrHashFailure, err)
		}
	}

	tokens := textnorm.Tokenize(canonical)
	tokenCount := len(tokens)
	tokens = textnorm.Sample(tokens, e.cfg.TokenCeiling)
	if tokenCount > len(tokens) {
		log.Debug().
			Str("file", req.FileName).
			Int("tokens", tokenCount).
			Int("sampled", len(tokens)).
			Msg("Token ceiling exceeded, applied stride sampling")
	}

	return &models.SubmittedDocument{
		FileName:      req.FileName,
		FilePath:      req.FilePath,
		RawText:       req.Text,
		CanonicalText: canonical,
		Tokens:        tokens,
		TokenSet:      textnorm.TokenSet(tokens),
		TokenCount:    tokenCount,
		ContentHash:   hash,
		WordCount:     wordCount,
		Pages:         req.Pages,
		Structure:     textnorm.Profile(req.Text),
		Scope:         models.Scope{GradeLevel: req.GradeLevel, ProjectType: req.ProjectType},
		RequesterID:   req.RequesterID,
		SchoolID:      req.SchoolID,
	}, nil
}

// scoreCandidate runs the metric suite for one candidate. Any failure,
// including a panic on malformed data, is converted to an error so the scan
// can skip the candidate and continue.
func (e *Engine) scoreCandidate(sub *models.SubmittedDocument, subFuzzyText string, cand *models.RepositoryDocument) (rec candidateRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while scoring candidate: %v", r)
		}
	}()

	if cand == nil || cand.Text == "" {
		return candidateRecord{}, fmt.Errorf("candidate has no extracted text")
	}

	canonical := textnorm.Normalize(cand.Text)
	tokens := textnorm.Sample(textnorm.Tokenize(canonical), e.cfg.TokenCeiling)

	structure := textnorm.Profile(cand.Text)
	if cand.Structure != nil {
		structure = *cand.Structure
	}

	fuzzy := FuzzyRatio(subFuzzyText, strings.Join(tokens, " "))
	jaccard := Jaccard(sub.TokenSet, textnorm.TokenSet(tokens))
	sequence := SequenceOverlap(sub.Tokens, tokens)
	structural := StructuralSimilarity(sub.Structure, structure)

	w := e.cfg.Weights
	aggregate := w.Fuzzy*fuzzy + w.Jaccard*jaccard + w.Sequence*sequence + w.Structural*structural

	return candidateRecord{
		score: models.CandidateScore{
			MatchedID:       cand.ID,
			MatchedName:     cand.DisplayName,
			SimilarityScore: round2(aggregate),
			Method:          models.MethodOptimizedHybrid,
			FuzzyScore:      round2(fuzzy),
			JaccardScore:    round2(jaccard),
			SequenceScore:   round2(sequence),
			StructuralScore: round2(structural),
			Flagged:         aggregate >= e.cfg.FlagThreshold,
		},
		pages:     cand.Pages,
		aggregate: aggregate,
	}, nil
}

// finalize assembles the result from the ranked records. Only the top
// MaxRetainedMatches rows are kept; totals still reflect every recorded
// candidate so callers can tell when the list was capped.
func (e *Engine) finalize(sub *models.SubmittedDocument, recorded []candidateRecord, scoreSum float64, examined, totalRecorded int, start time.Time) *models.ComparisonResult {
	retained := recorded
	if len(retained) > MaxRetainedMatches {
		retained = retained[:MaxRetainedMatches]
	}

	matches := make([]models.CandidateScore, 0, len(retained))
	maxScore := 0.0
	highRisk := 0

	for _, rec := range recorded {
		if rec.aggregate > maxScore {
			maxScore = rec.aggregate
		}
		if rec.score.Flagged {
			highRisk++
		}
	}

	for _, rec := range retained {
		score := rec.score
		if rec.aggregate >= e.cfg.SegmentThreshold && len(sub.Pages) > 0 && len(rec.pages) > 0 {
			segments, coverage := MatchSegments(sub, rec.pages)
			score.MatchedSegments = segments
			score.CoveragePercentage = round2(coverage)
		}
		matches = append(matches, score)
	}

	avgScore := 0.0
	if examined > 0 {
		avgScore = scoreSum / float64(examined)
	}

	status, review := e.cfg.Classify(maxScore)

	return &models.ComparisonResult{
		FileName:           sub.FileName,
		FilePath:           sub.FilePath,
		ContentHash:        sub.ContentHash,
		GradeLevel:         sub.Scope.GradeLevel,
		ProjectType:        sub.Scope.ProjectType,
		AlgorithmUsed:      models.MethodOptimizedHybrid,
		Matches:            matches,
		MaxSimilarityScore: round2(maxScore),
		AvgSimilarityScore: round2(avgScore),
		TotalMatchesFound:  totalRecorded,
		TotalFilesCompared: examined,
		HighRiskMatches:    highRisk,
		Status:             status,
		ReviewRequired:     review,
		ProcessingTimeMs:   e.clock.Now().Sub(start).Milliseconds(),
		RequesterID:        sub.RequesterID,
		SchoolID:           sub.SchoolID,
		CreatedAt:          e.clock.Now(),
	}
}

// finalizeExact emits the short-circuit result for a bit-identical digest
// match. The metric suite never runs on this path.
func (e *Engine) finalizeExact(sub *models.SubmittedDocument, matched *models.RepositoryDocument, start time.Time) *models.ComparisonResult {
	match := models.CandidateScore{
		MatchedID:       matched.ID,
		MatchedName:     matched.DisplayName,
		SimilarityScore: 1.0,
		Method:          models.MethodHashExactMatch,
		FuzzyScore:      1.0,
		JaccardScore:    1.0,
		SequenceScore:   1.0,
		StructuralScore: 1.0,
		Flagged:         true,
	}

	return &models.ComparisonResult{
		FileName:           sub.FileName,
		FilePath:           sub.FilePath,
		ContentHash:        sub.ContentHash,
		GradeLevel:         sub.Scope.GradeLevel,
		ProjectType:        sub.Scope.ProjectType,
		AlgorithmUsed:      models.MethodHashExactMatch,
		Matches:            []models.CandidateScore{match},
		MaxSimilarityScore: 1.0,
		AvgSimilarityScore: 1.0,
		TotalMatchesFound:  1,
		TotalFilesCompared: 1,
		HighRiskMatches:    1,
		Status:             models.StatusFlagged,
		ReviewRequired:     true,
		ProcessingTimeMs:   e.clock.Now().Sub(start).Milliseconds(),
		RequesterID:        sub.RequesterID,
		SchoolID:           sub.SchoolID,
		CreatedAt:          e.clock.Now(),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
