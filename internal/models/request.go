package models

// CompareRequest is the payload from the extraction collaborator asking for a
// new document to be compared against the repository.
type CompareRequest struct {
	FileName    string     `json:"file_name" binding:"required"`
	FilePath    string     `json:"file_path"`
	Text        string     `json:"text" binding:"required"`
	WordCount   int        `json:"word_count"`
	ContentHash string     `json:"content_hash"`
	GradeLevel  string     `json:"grade_level" binding:"required"`
	ProjectType string     `json:"project_type" binding:"required"`
	Pages       []PageText `json:"pages"`
	RequesterID string     `json:"requester_id"`
	SchoolID    string     `json:"school_id"`
}

// IndexEvent is a document-upload event read from the Redis stream. Text may
// be empty; the indexer then asks the extraction service for it.
type IndexEvent struct {
	DocumentID  string     `json:"document_id"`
	FileName    string     `json:"file_name"`
	FilePath    string     `json:"file_path"`
	Text        string     `json:"text"`
	Pages       []PageText `json:"pages"`
	GradeLevel  string     `json:"grade_level"`
	ProjectType string     `json:"project_type"`
	SchoolID    string     `json:"school_id"`
	UploadedBy  string     `json:"uploaded_by"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
