package plagiarism

import (
	"context"
	"fmt"
	"time"

	"github.com/methkalz/edu-net-11-sub004/internal/infra/redis"
	"github.com/methkalz/edu-net-11-sub004/internal/models"
	"github.com/rs/zerolog/log"
)

const statusTTL = 12 * time.Hour

// UpdateStatus records the current step of a comparison in Redis so the
// result-viewer can poll progress.
func UpdateStatus(ctx context.Context, redisClient *redis.Client, comparisonID string, step models.Step) error {
	validSteps := map[models.Step]bool{
		models.StepReceived:  true,
		models.StepScanning:  true,
		models.StepCompleted: true,
		models.StepFailed:    true,
	}
	if !validSteps[step] {
		return fmt.Errorf("unknown step: %s", step)
	}

	rkey := "comparison_status:" + comparisonID

	err := redisClient.Set(ctx, rkey, string(step), statusTTL).Err()
	if err != nil {
		log.Error().Err(err).
			Str("step", string(step)).
			Str("comparison_id", comparisonID).
			Str("redis_key", rkey).
			Msg("Failed to update status in Redis")
		return fmt.Errorf("failed to update status in Redis: %w", err)
	}

	log.Trace().
		Str("step", string(step)).
		Str("comparison_id", comparisonID).
		Msg("Status updated in Redis")

	return nil
}
