package models

import "time"

// Scope identifies the slice of the repository a submission is compared
// against. Documents are only ever compared within the same grade level and
// project type.
type Scope struct {
	GradeLevel  string `bson:"grade_level" json:"grade_level"`
	ProjectType string `bson:"project_type" json:"project_type"`
}

// PageText is one page of extracted text, in original page order
type PageText struct {
	Page int    `bson:"page" json:"page"`
	Text string `bson:"text" json:"text"`
}

// StructureProfile captures the shape of a document independent of wording
type StructureProfile struct {
	SentenceCount     int     `bson:"sentence_count" json:"sentence_count"`
	AvgSentenceTokens float64 `bson:"avg_sentence_tokens" json:"avg_sentence_tokens"`
	ParagraphCount    int     `bson:"paragraph_count" json:"paragraph_count"`
}

// RepositoryDocument is a previously indexed document as stored in MongoDB.
// The engine reads these as an immutable snapshot; it never writes them.
type RepositoryDocument struct {
	ID          string            `bson:"_id" json:"id"`
	DisplayName string            `bson:"display_name" json:"display_name"`
	FilePath    string            `bson:"file_path" json:"file_path"`
	Text        string            `bson:"text" json:"text"` // canonical form
	ContentHash string            `bson:"content_hash" json:"content_hash"`
	GradeLevel  string            `bson:"grade_level" json:"grade_level"`
	ProjectType string            `bson:"project_type" json:"project_type"`
	Pages       []PageText        `bson:"pages,omitempty" json:"pages,omitempty"`
	Structure   *StructureProfile `bson:"structure,omitempty" json:"structure,omitempty"`
	SchoolID    string            `bson:"school_id" json:"school_id"`
	UploadedBy  string            `bson:"uploaded_by" json:"uploaded_by"`
	CreatedAt   time.Time         `bson:"created_at" json:"created_at"`
}

// SubmittedDocument is the request-scoped view of the document under
// comparison. Built once by the orchestrator and immutable afterwards.
type SubmittedDocument struct {
	FileName      string
	FilePath      string
	RawText       string
	CanonicalText string
	Tokens        []string // possibly sampled, bounded by the token ceiling
	TokenSet      map[string]struct{}
	TokenCount    int // token count before sampling
	ContentHash   string
	WordCount     int
	Pages         []PageText
	Structure     StructureProfile
	Scope         Scope
	RequesterID   string
	SchoolID      string
}
