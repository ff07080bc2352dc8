package redis

import (
	"context"
	"fmt"
)

// ClearDatasetData удаляет итоги прогонов и все счетчики статистики.
// Ключи удаляются пачками по мере обхода SCAN.
func (c *Client) ClearDatasetData() error {
	ctx := context.Background()

	for _, pattern := range []string{"dataset:*", riskStatsPrefix + "*", fraudStatsPrefix + "*"} {
		var cursor uint64
		for {
			keys, next, err := c.rdb.Scan(ctx, cursor, pattern, 100).Result()
			if err != nil {
				return fmt.Errorf("failed to scan %s: %w", pattern, err)
			}
			if len(keys) > 0 {
				if err := c.rdb.Unlink(ctx, keys...).Err(); err != nil {
					return fmt.Errorf("failed to delete keys for %s: %w", pattern, err)
				}
			}
			if next == 0 {
				break
			}
			cursor = next
		}
	}

	return nil
}
