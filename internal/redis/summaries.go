package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fraud-data-simulator/internal/models"

	redisv9 "github.com/redis/go-redis/v9"
)

// SummaryTTL время хранения итогов прогона
const SummaryTTL = 24 * time.Hour

func summaryKey(runID string) string {
	return fmt.Sprintf("dataset:%s:summary", runID)
}

// SaveRunSummary сохраняет итог прогона в Redis с TTL 24 часа
func (c *Client) SaveRunSummary(summary *models.DatasetSummary) error {
	ctx := context.Background()

	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	return c.rdb.Set(ctx, summaryKey(summary.RunID), data, SummaryTTL).Err()
}

// GetRunSummary получает итог прогона из Redis
func (c *Client) GetRunSummary(runID string) (*models.DatasetSummary, error) {
	ctx := context.Background()

	data, err := c.rdb.Get(ctx, summaryKey(runID)).Result()
	if err == redisv9.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	var summary models.DatasetSummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}

	return &summary, nil
}
