package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	maxAttempts    = 3
	initialBackoff = 500 * time.Millisecond
)

// RetryHandler retries failed message processing with exponential backoff and
// parks messages that keep failing on a dead-letter list.
type RetryHandler struct {
	client        *redis.Client
	deadLetterKey string
}

func NewRetryHandler(client *redis.Client, deadLetterKey string) *RetryHandler {
	return &RetryHandler{
		client:        client,
		deadLetterKey: deadLetterKey,
	}
}

type deadLetterEntry struct {
	MessageID string                 `json:"message_id"`
	Fields    map[string]interface{} `json:"fields"`
	Error     string                 `json:"error"`
	FailedAt  time.Time              `json:"failed_at"`
}

// RetryWithBackoff runs fn up to maxAttempts times. After the final failure
// the message is pushed to the dead-letter list and the last error returned.
func (h *RetryHandler) RetryWithBackoff(ctx context.Context, fn func() error, messageID string, fields map[string]interface{}) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		log.Warn().Err(lastErr).
			Str("message_id", messageID).
			Int("attempt", attempt).
			Int("max_attempts", maxAttempts).
			Msg("Message processing failed")

		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}

	if err := h.sendToDeadLetter(ctx, messageID, fields, lastErr); err != nil {
		log.Error().Err(err).
			Str("message_id", messageID).
			Msg("Failed to park message on dead-letter list")
	}

	return lastErr
}

func (h *RetryHandler) sendToDeadLetter(ctx context.Context, messageID string, fields map[string]interface{}, cause error) error {
	entry := deadLetterEntry{
		MessageID: messageID,
		Fields:    fields,
		FailedAt:  time.Now(),
	}
	if cause != nil {
		entry.Error = cause.Error()
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal dead-letter entry: %w", err)
	}

	if err := h.client.RPush(ctx, h.deadLetterKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to push dead-letter entry: %w", err)
	}

	log.Info().
		Str("message_id", messageID).
		Str("dead_letter_key", h.deadLetterKey).
		Msg("Message parked on dead-letter list")

	return nil
}
