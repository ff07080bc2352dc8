package redis

import (
	"context"
	"fmt"
	"time"

	"fraud-data-simulator/internal/config"

	redisv9 "github.com/redis/go-redis/v9"
)

const pingTimeout = 3 * time.Second

// Client хранит итоги прогонов и счетчики риска
type Client struct {
	rdb *redisv9.Client
}

// NewClient подключается к Redis и проверяет соединение. При недоступном Redis
// сервис работает без статистики, поэтому ошибка не фатальна для вызывающего.
func NewClient(cfg *config.Config) (*Client, error) {
	rdb := redisv9.NewClient(&redisv9.Options{
		Addr:         cfg.Redis.RedisAddr(),
		Password:     cfg.Redis.Password,
		DialTimeout:  pingTimeout,
		WriteTimeout: pingTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.RedisAddr(), err)
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
