package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/methkalz/edu-net-11-sub004/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const documentsCollection = "project_documents"

// DocumentsRepository reads and writes the indexed document corpus. The
// comparison engine only ever reads through it (plagiarism.DocumentSource);
// writes come from the index pipeline.
type DocumentsRepository struct {
	mongoRepo *MongoRepository
}

func NewDocumentsRepository(mongoRepo *MongoRepository) *DocumentsRepository {
	return &DocumentsRepository{
		mongoRepo: mongoRepo,
	}
}

func scopeFilter(scope models.Scope) bson.M {
	return bson.M{
		"grade_level":  scope.GradeLevel,
		"project_type": scope.ProjectType,
	}
}

// FindByContentHash looks up an exact digest match within the scope
func (r *DocumentsRepository) FindByContentHash(ctx context.Context, hash string, scope models.Scope) (*models.RepositoryDocument, error) {
	filter := scopeFilter(scope)
	filter["content_hash"] = hash

	var doc models.RepositoryDocument
	err := r.mongoRepo.FindOne(ctx, documentsCollection, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find document by hash: %w", err)
	}

	return &doc, nil
}

// ListByScope fetches the comparison snapshot for a grade level and project
// type, oldest first so scan order is stable across runs.
func (r *DocumentsRepository) ListByScope(ctx context.Context, scope models.Scope) ([]*models.RepositoryDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.mongoRepo.FindMany(ctx, documentsCollection, scopeFilter(scope), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*models.RepositoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}

	return docs, nil
}

// UpsertDocument stores an indexed document, replacing any previous version
// of the same document id.
func (r *DocumentsRepository) UpsertDocument(ctx context.Context, doc *models.RepositoryDocument) error {
	doc.CreatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	err := r.mongoRepo.ReplaceOne(ctx, documentsCollection, bson.M{"_id": doc.ID}, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}

	return nil
}

func (r *DocumentsRepository) CountByScope(ctx context.Context, scope models.Scope) (int64, error) {
	count, err := r.mongoRepo.CountDocuments(ctx, documentsCollection, scopeFilter(scope))
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}

	return count, nil
}
