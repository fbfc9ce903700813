package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/methkalz/edu-net-11-sub004/internal/config"
	"github.com/methkalz/edu-net-11-sub004/internal/infra/redis"
	"github.com/methkalz/edu-net-11-sub004/internal/metrics"
	"github.com/methkalz/edu-net-11-sub004/internal/models"
	"github.com/methkalz/edu-net-11-sub004/internal/plagiarism"
	"github.com/methkalz/edu-net-11-sub004/internal/repository"
	"github.com/rs/zerolog/log"
)

// Handler holds dependencies for handlers
type Handler struct {
	cfg         *config.Config
	engine      *plagiarism.Engine
	resultsRepo *repository.ResultsRepository
	workerPool  *plagiarism.WorkerPool
	redisClient *redis.Client
	compareSem  chan struct{} // Semaphore for bounded concurrency
}

func NewHandler(
	cfg *config.Config,
	engine *plagiarism.Engine,
	resultsRepo *repository.ResultsRepository,
	workerPool *plagiarism.WorkerPool,
	redisClient *redis.Client,
) *Handler {
	return &Handler{
		cfg:         cfg,
		engine:      engine,
		resultsRepo: resultsRepo,
		workerPool:  workerPool,
		redisClient: redisClient,
		compareSem:  make(chan struct{}, cfg.MaxConcurrentCompare),
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

// Compare runs a full comparison synchronously and returns the result. The
// caller always gets either a well-formed result or a small fatal-error code.
func (h *Handler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	ctx := c.Request.Context()

	// Acquire semaphore (bounded concurrency)
	select {
	case h.compareSem <- struct{}{}:
		defer func() { <-h.compareSem }()
	case <-ctx.Done():
		c.JSON(http.StatusRequestTimeout, models.ErrorResponse{
			Error: "Request cancelled",
			Code:  "REQUEST_TIMEOUT",
		})
		return
	}

	comparisonID := uuid.New().String()
	h.updateStatus(ctx, comparisonID, models.StepReceived)

	start := time.Now()
	outcome, err := h.runComparison(ctx, comparisonID, &req)
	if err != nil {
		h.updateStatus(ctx, comparisonID, models.StepFailed)
		h.writeCompareError(c, err)
		return
	}

	result := outcome
	result.ComparisonID = comparisonID

	metrics.ComparisonCount.WithLabelValues(string(result.Status)).Inc()
	metrics.ComparisonDuration.Observe(time.Since(start).Seconds())

	if err := h.resultsRepo.InsertResult(ctx, result); err != nil {
		// The result is still returned; persistence is the collaborator's
		// concern and must not swallow a finished comparison.
		log.Error().Err(err).
			Str("comparison_id", comparisonID).
			Msg("Failed to persist comparison result")
	}

	h.updateStatus(ctx, comparisonID, models.StepCompleted)

	log.Info().
		Str("comparison_id", comparisonID).
		Str("file", result.FileName).
		Str("status", string(result.Status)).
		Float64("max_score", result.MaxSimilarityScore).
		Int("matches", len(result.Matches)).
		Int64("processing_ms", result.ProcessingTimeMs).
		Msg("Comparison completed")

	c.JSON(http.StatusOK, result)
}

// runComparison executes the engine on the worker pool and waits for the
// outcome, so concurrent requests share the CPU-sized pool.
func (h *Handler) runComparison(ctx context.Context, comparisonID string, req *models.CompareRequest) (*models.ComparisonResult, error) {
	h.updateStatus(ctx, comparisonID, models.StepScanning)

	done := make(chan plagiarism.CompareOutcome, 1)
	job := &plagiarism.CompareJob{
		Engine:  h.engine,
		Request: req,
		Done:    done,
	}

	if err := h.workerPool.Submit(job); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case outcome := <-done:
		return outcome.Result, outcome.Err
	}
}

func (h *Handler) writeCompareError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, plagiarism.ErrInputTooLarge):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: "File too large to compare",
			Code:  "FILE_TOO_LARGE",
		})
	case errors.Is(err, plagiarism.ErrHashFailure):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to compute content hash",
			Code:  "HASH_FAILURE",
		})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusRequestTimeout, models.ErrorResponse{
			Error: "Request cancelled",
			Code:  "REQUEST_TIMEOUT",
		})
	default:
		log.Error().Err(err).Msg("Comparison failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Comparison failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	metrics.ComparisonCount.WithLabelValues("error").Inc()
}

// GetReport returns the latest persisted result for a content hash
func (h *Handler) GetReport(c *gin.Context) {
	hash := c.Param("hash")
	if hash == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Content hash is required",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	result, err := h.resultsRepo.GetLatestByContentHash(c.Request.Context(), hash)
	if err != nil {
		log.Error().Err(err).Str("hash", hash).Msg("Failed to fetch report")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to fetch report",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	if result == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "No report for this document",
			Code:  "REPORT_NOT_FOUND",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetStatus returns the current step of a running comparison
func (h *Handler) GetStatus(c *gin.Context) {
	comparisonID := c.Param("id")

	step, err := h.redisClient.Get(c.Request.Context(), "comparison_status:"+comparisonID).Result()
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "Unknown comparison id",
			Code:  "STATUS_NOT_FOUND",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comparison_id": comparisonID,
		"step":          step,
	})
}

func (h *Handler) updateStatus(ctx context.Context, comparisonID string, step models.Step) {
	if err := plagiarism.UpdateStatus(ctx, h.redisClient, comparisonID, step); err != nil {
		log.Warn().Err(err).
			Str("comparison_id", comparisonID).
			Str("step", string(step)).
			Msg("Failed to update comparison status")
	}
}
