package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndexEvent(t *testing.T) {
	msg := &StreamMessage{
		ID: "1700000000000-0",
		Fields: map[string]string{
			"document_id":  "doc-1",
			"file_name":    "essay.pdf",
			"file_path":    "uploads/essay.pdf",
			"text":         "extracted text",
			"grade_level":  "11",
			"project_type": "final",
			"school_id":    "school-3",
			"uploaded_by":  "teacher-7",
		},
	}

	event, err := ParseIndexEvent(msg)
	require.NoError(t, err)

	assert.Equal(t, "doc-1", event.DocumentID)
	assert.Equal(t, "essay.pdf", event.FileName)
	assert.Equal(t, "extracted text", event.Text)
	assert.Equal(t, "11", event.GradeLevel)
	assert.Equal(t, "final", event.ProjectType)
	assert.Empty(t, event.Pages)
}

func TestParseIndexEventDecodesPages(t *testing.T) {
	msg := &StreamMessage{
		ID: "1700000000000-1",
		Fields: map[string]string{
			"document_id":  "doc-2",
			"grade_level":  "11",
			"project_type": "mini",
			"pages":        `[{"page":1,"text":"first page"},{"page":2,"text":"second page"}]`,
		},
	}

	event, err := ParseIndexEvent(msg)
	require.NoError(t, err)

	require.Len(t, event.Pages, 2)
	assert.Equal(t, 1, event.Pages[0].Page)
	assert.Equal(t, "second page", event.Pages[1].Text)
}

func TestParseIndexEventMissingDocumentID(t *testing.T) {
	msg := &StreamMessage{
		ID:     "1700000000000-2",
		Fields: map[string]string{"grade_level": "11", "project_type": "final"},
	}

	_, err := ParseIndexEvent(msg)
	assert.Error(t, err)
}

func TestParseIndexEventMissingScopeTags(t *testing.T) {
	msg := &StreamMessage{
		ID:     "1700000000000-3",
		Fields: map[string]string{"document_id": "doc-3", "grade_level": "11"},
	}

	_, err := ParseIndexEvent(msg)
	assert.Error(t, err)
}

func TestParseIndexEventMalformedPages(t *testing.T) {
	msg := &StreamMessage{
		ID: "1700000000000-4",
		Fields: map[string]string{
			"document_id":  "doc-4",
			"grade_level":  "11",
			"project_type": "final",
			"pages":        "not json",
		},
	}

	_, err := ParseIndexEvent(msg)
	assert.Error(t, err)
}
