package api

import (
	"github.com/gin-gonic/gin"
	"github.com/methkalz/edu-net-11-sub004/internal/config"
	"github.com/methkalz/edu-net-11-sub004/internal/infra/redis"
	"github.com/methkalz/edu-net-11-sub004/internal/plagiarism"
	"github.com/methkalz/edu-net-11-sub004/internal/repository"
)

func SetupRoutes(
	cfg *config.Config,
	engine *plagiarism.Engine,
	resultsRepo *repository.ResultsRepository,
	workerPool *plagiarism.WorkerPool,
	redisClient *redis.Client,
) *gin.Engine {
	router := gin.Default()

	handler := NewHandler(cfg, engine, resultsRepo, workerPool, redisClient)

	rateLimiter := NewRateLimiter(cfg.RateLimitRPS, int(cfg.RateLimitRPS*2))

	router.Use(ErrorHandlerMiddleware())

	// Health endpoint (no auth)
	router.GET("/health", handler.Health)

	// API routes (with auth and rate limiting)
	api := router.Group("/api/v1")
	api.Use(JWTAuthMiddleware(cfg.JWTSecret))
	api.Use(RateLimitMiddleware(rateLimiter))
	{
		api.POST("/compare", handler.Compare)
		api.GET("/reports/:hash", handler.GetReport)
		api.GET("/comparisons/:id/status", handler.GetStatus)
	}

	return router
}
