package indexer

import (
	"context"
	"fmt"

	"github.com/methkalz/edu-net-11-sub004/internal/extract"
	"github.com/methkalz/edu-net-11-sub004/internal/metrics"
	"github.com/methkalz/edu-net-11-sub004/internal/models"
	"github.com/methkalz/edu-net-11-sub004/internal/repository"
	"github.com/methkalz/edu-net-11-sub004/internal/textnorm"
	"github.com/rs/zerolog/log"
)

// Service turns upload events into indexed repository documents: fetch
// extracted text when the event has none, canonicalize, hash, precompute the
// structure profile, store.
type Service struct {
	extractor     *extract.Client
	documentsRepo *repository.DocumentsRepository
}

func NewService(extractor *extract.Client, documentsRepo *repository.DocumentsRepository) *Service {
	return &Service{
		extractor:     extractor,
		documentsRepo: documentsRepo,
	}
}

func (s *Service) IndexDocument(ctx context.Context, event *models.IndexEvent) error {
	if event.DocumentID == "" {
		return fmt.Errorf("index event has no document id")
	}

	text := event.Text
	pages := event.Pages
	if text == "" {
		resp, err := s.extractor.Extract(ctx, &extract.ExtractRequest{
			DocumentID: event.DocumentID,
			FilePath:   event.FilePath,
		})
		if err != nil {
			metrics.IndexFailures.Inc()
			return fmt.Errorf("failed to extract text: %w", err)
		}
		text = resp.Text
		pages = resp.Pages
	}

	if text == "" {
		metrics.IndexFailures.Inc()
		return fmt.Errorf("document %s has no extractable text", event.DocumentID)
	}

	canonical := textnorm.Normalize(text)
	hash, err := textnorm.ContentHash(canonical)
	if err != nil {
		metrics.IndexFailures.Inc()
		return fmt.Errorf("failed to hash document %s: %w", event.DocumentID, err)
	}

	structure := textnorm.Profile(text)

	doc := &models.RepositoryDocument{
		ID:          event.DocumentID,
		DisplayName: event.FileName,
		FilePath:    event.FilePath,
		Text:        canonical,
		ContentHash: hash,
		GradeLevel:  event.GradeLevel,
		ProjectType: event.ProjectType,
		Pages:       pages,
		Structure:   &structure,
		SchoolID:    event.SchoolID,
		UploadedBy:  event.UploadedBy,
	}

	if err := s.documentsRepo.UpsertDocument(ctx, doc); err != nil {
		metrics.IndexFailures.Inc()
		return fmt.Errorf("failed to store document: %w", err)
	}

	metrics.DocumentsIndexed.Inc()
	log.Info().
		Str("document_id", doc.ID).
		Str("grade_level", doc.GradeLevel).
		Str("project_type", doc.ProjectType).
		Int("pages", len(doc.Pages)).
		Msg("Document indexed")

	return nil
}
