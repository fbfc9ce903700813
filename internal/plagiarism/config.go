package plagiarism

import (
	"fmt"
	"time"
)

// Result-shaping caps. These are part of the output contract, not tunables.
const (
	// MaxRetainedMatches bounds the candidate list in the final result
	MaxRetainedMatches = 5
	// MaxSegmentsPerMatch bounds sentence-level evidence per candidate
	MaxSegmentsPerMatch = 20
	// sentencePairThreshold is the minimum fuzzy score for a sentence pair to
	// count as evidence
	sentencePairThreshold = 0.70
)

// Weights are the fixed convex coefficients of the aggregate score
type Weights struct {
	Fuzzy      float64
	Jaccard    float64
	Sequence   float64
	Structural float64
}

// Config holds the engine policy. The default values are product policy
// carried over unchanged; deployments may override them via configuration but
// the engine never re-derives them.
type Config struct {
	Weights Weights

	// RecordThreshold is the minimum aggregate for a candidate to appear in
	// results at all; FlagThreshold marks a recorded candidate high-risk;
	// SegmentThreshold gates the quadratic sentence matcher.
	RecordThreshold  float64
	SegmentThreshold float64
	FlagThreshold    float64

	// ScanBudget is the cooperative wall-clock budget for the candidate loop
	ScanBudget time.Duration

	// TokenCeiling bounds per-document token sequences via stride sampling
	TokenCeiling int

	// MaxWordCount is the hard input ceiling; larger submissions are rejected
	// before any computation
	MaxWordCount int
}

// DefaultConfig returns the engine policy as shipped
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Fuzzy:      0.35,
			Jaccard:    0.25,
			Sequence:   0.25,
			Structural: 0.15,
		},
		RecordThreshold:  0.30,
		SegmentThreshold: 0.50,
		FlagThreshold:    0.70,
		ScanBudget:       25 * time.Second,
		TokenCeiling:     50000,
		MaxWordCount:     500000,
	}
}

// Validate checks the configuration is usable
func (c Config) Validate() error {
	sum := c.Weights.Fuzzy + c.Weights.Jaccard + c.Weights.Sequence + c.Weights.Structural
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("weights must sum to 1.0, got %.3f", sum)
	}
	for _, t := range []float64{c.RecordThreshold, c.SegmentThreshold, c.FlagThreshold} {
		if t < 0 || t > 1 {
			return fmt.Errorf("thresholds must be in [0,1]")
		}
	}
	if c.SegmentThreshold < c.RecordThreshold || c.FlagThreshold < c.SegmentThreshold {
		return fmt.Errorf("thresholds must be ordered record <= segment <= flag")
	}
	if c.ScanBudget <= 0 {
		return fmt.Errorf("scan budget must be positive")
	}
	if c.TokenCeiling <= 0 {
		return fmt.Errorf("token ceiling must be positive")
	}
	if c.MaxWordCount <= 0 {
		return fmt.Errorf("max word count must be positive")
	}
	return nil
}
