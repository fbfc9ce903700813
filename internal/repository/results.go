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

const reportsCollection = "comparison_reports"

// ResultsRepository persists comparison results. The engine emits the result
// value; this is the external persistence collaborator that stores it.
type ResultsRepository struct {
	mongoRepo *MongoRepository
}

func NewResultsRepository(mongoRepo *MongoRepository) *ResultsRepository {
	return &ResultsRepository{
		mongoRepo: mongoRepo,
	}
}

func (r *ResultsRepository) InsertResult(ctx context.Context, result *models.ComparisonResult) error {
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now()
	}

	err := r.mongoRepo.InsertOne(ctx, reportsCollection, result)
	if err != nil {
		return fmt.Errorf("failed to insert comparison result: %w", err)
	}

	return nil
}

// GetLatestByContentHash returns the most recent persisted result for a
// document digest, or nil when none exists.
func (r *ResultsRepository) GetLatestByContentHash(ctx context.Context, hash string) (*models.ComparisonResult, error) {
	filter := bson.M{"content_hash": hash}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var result models.ComparisonResult
	err := r.mongoRepo.FindOne(ctx, reportsCollection, filter, opts).Decode(&result)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find comparison result: %w", err)
	}

	return &result, nil
}
