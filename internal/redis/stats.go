package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	redisv9 "github.com/redis/go-redis/v9"
)

const (
	riskStatsPrefix  = "risk_stats:"
	fraudStatsPrefix = "fraud_stats:"
)

func runRiskStatsKey(runID string) string {
	return fmt.Sprintf("dataset:%s:risk_stats", runID)
}

// IncrementRiskStats увеличивает счетчики уровней риска одним pipeline на чанк
func (c *Client) IncrementRiskStats(runID string, levels map[string]int) error {
	if len(levels) == 0 {
		return nil
	}
	ctx := context.Background()

	pipe := c.rdb.Pipeline()
	for level, n := range levels {
		pipe.IncrBy(ctx, riskStatsPrefix+level, int64(n))
		if runID != "" {
			pipe.HIncrBy(ctx, runRiskStatsKey(runID), level, int64(n))
		}
	}
	if runID != "" {
		pipe.Expire(ctx, runRiskStatsKey(runID), SummaryTTL)
	}

	_, err := pipe.Exec(ctx)
	return err
}

// IncrementFraudStats увеличивает счетчики мошенничества по категориям мерчантов
func (c *Client) IncrementFraudStats(byCategory map[string]int) error {
	if len(byCategory) == 0 {
		return nil
	}
	ctx := context.Background()

	pipe := c.rdb.Pipeline()
	for category, n := range byCategory {
		pipe.IncrBy(ctx, fraudStatsPrefix+category, int64(n))
	}
	_, err := pipe.Exec(ctx)
	return err
}

// GetRiskStats получает глобальные счетчики уровней риска
func (c *Client) GetRiskStats() (map[string]int64, error) {
	return c.scanCounters(riskStatsPrefix)
}

// GetFraudStats получает счетчики мошенничества по категориям
func (c *Client) GetFraudStats() (map[string]int64, error) {
	return c.scanCounters(fraudStatsPrefix)
}

// GetRunRiskStats получает счетчики уровней риска прогона
func (c *Client) GetRunRiskStats(runID string) (map[string]int64, error) {
	ctx := context.Background()

	values, err := c.rdb.HGetAll(ctx, runRiskStatsKey(runID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get run risk stats: %w", err)
	}

	stats := make(map[string]int64, len(values))
	for level, v := range values {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid counter %s=%q: %w", level, v, err)
		}
		stats[level] = n
	}
	return stats, nil
}

func (c *Client) scanCounters(prefix string) (map[string]int64, error) {
	ctx := context.Background()
	stats := make(map[string]int64)

	iter := c.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		n, err := c.rdb.Get(ctx, key).Int64()
		if err == redisv9.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		stats[strings.TrimPrefix(key, prefix)] = n
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", prefix, err)
	}

	return stats, nil
}
