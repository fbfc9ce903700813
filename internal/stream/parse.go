package stream

import (
	"encoding/json"
	"fmt"

	"github.com/methkalz/edu-net-11-sub004/internal/models"
)

// StreamMessage is a raw message read from the upload stream
type StreamMessage struct {
	ID     string
	Fields map[string]string
}

// ParseIndexEvent maps the flat stream fields onto an IndexEvent. The pages
// field, when present, is a JSON array of {page, text}.
func ParseIndexEvent(msg *StreamMessage) (*models.IndexEvent, error) {
	event := &models.IndexEvent{
		DocumentID:  msg.Fields["document_id"],
		FileName:    msg.Fields["file_name"],
		FilePath:    msg.Fields["file_path"],
		Text:        msg.Fields["text"],
		GradeLevel:  msg.Fields["grade_level"],
		ProjectType: msg.Fields["project_type"],
		SchoolID:    msg.Fields["school_id"],
		UploadedBy:  msg.Fields["uploaded_by"],
	}

	if event.DocumentID == "" {
		return nil, fmt.Errorf("message %s is missing document_id", msg.ID)
	}
	if event.GradeLevel == "" || event.ProjectType == "" {
		return nil, fmt.Errorf("message %s is missing scope tags", msg.ID)
	}

	if raw, ok := msg.Fields["pages"]; ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &event.Pages); err != nil {
			return nil, fmt.Errorf("message %s has malformed pages field: %w", msg.ID, err)
		}
	}

	return event, nil
}
