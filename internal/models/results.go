package models

import "time"

type Step string

const (
	StepReceived  Step = "received"
	StepScanning  Step = "scanning"
	StepCompleted Step = "completed"
	StepFailed    Step = "failed"
)

// Status is the final verdict taxonomy for a comparison
type Status string

const (
	StatusSafe    Status = "safe"
	StatusWarning Status = "warning"
	StatusFlagged Status = "flagged"
)

// Scoring method labels
const (
	MethodHashExactMatch  = "hash_exact_match"
	MethodOptimizedHybrid = "optimized_hybrid"
)

// MatchedSegment is one sentence-level evidence pair. At most 20 are kept per
// candidate, sorted descending by similarity.
type MatchedSegment struct {
	SourceSentence  string  `bson:"source_sentence" json:"source_sentence"`
	MatchedSentence string  `bson:"matched_sentence" json:"matched_sentence"`
	SourcePage      int     `bson:"source_page" json:"source_page"`
	MatchedPage     int     `bson:"matched_page" json:"matched_page"`
	Similarity      float64 `bson:"similarity" json:"similarity"`
}

// CandidateScore is one ranked repository match. SimilarityScore is the fixed
// weighted sum of the four sub-scores, rounded to two decimals for output.
type CandidateScore struct {
	MatchedID          string           `bson:"matched_id" json:"matched_id"`
	MatchedName        string           `bson:"matched_name" json:"matched_name"`
	SimilarityScore    float64          `bson:"similarity_score" json:"similarity_score"`
	Method             string           `bson:"method" json:"method"`
	FuzzyScore         float64          `bson:"fuzzy_score" json:"fuzzy_score"`
	JaccardScore       float64          `bson:"jaccard_score" json:"jaccard_score"`
	SequenceScore      float64          `bson:"sequence_score" json:"sequence_score"`
	StructuralScore    float64          `bson:"structural_score" json:"structural_score"`
	CoveragePercentage float64          `bson:"coverage_percentage" json:"coverage_percentage"`
	MatchedSegments    []MatchedSegment `bson:"matched_segments,omitempty" json:"matched_segments,omitempty"`
	Flagged            bool             `bson:"flagged" json:"flagged"`
}

// ComparisonResult is the immutable outcome of one comparison request. The
// engine hands it to the persister and keeps no reference afterwards.
type ComparisonResult struct {
	ComparisonID       string           `bson:"comparison_id" json:"comparison_id"`
	FileName           string           `bson:"file_name" json:"file_name"`
	FilePath           string           `bson:"file_path" json:"file_path"`
	ContentHash        string           `bson:"content_hash" json:"content_hash"`
	GradeLevel         string           `bson:"grade_level" json:"grade_level"`
	ProjectType        string           `bson:"project_type" json:"project_type"`
	AlgorithmUsed      string           `bson:"algorithm_used" json:"algorithm_used"`
	Matches            []CandidateScore `bson:"matches" json:"matches"`
	MaxSimilarityScore float64          `bson:"max_similarity_score" json:"max_similarity_score"`
	AvgSimilarityScore float64          `bson:"avg_similarity_score" json:"avg_similarity_score"`
	TotalMatchesFound  int              `bson:"total_matches_found" json:"total_matches_found"`
	TotalFilesCompared int              `bson:"total_files_compared" json:"total_files_compared"`
	HighRiskMatches    int              `bson:"high_risk_matches" json:"high_risk_matches"`
	Status             Status           `bson:"status" json:"status"`
	ReviewRequired     bool             `bson:"review_required" json:"review_required"`
	ProcessingTimeMs   int64            `bson:"processing_time_ms" json:"processing_time_ms"`
	RequesterID        string           `bson:"requester_id" json:"requester_id"`
	SchoolID           string           `bson:"school_id" json:"school_id"`
	CreatedAt          time.Time        `bson:"created_at" json:"created_at"`
}
