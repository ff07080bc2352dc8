package sqlite

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// retryPolicy повтор записи при SQLITE_BUSY / SQLITE_LOCKED. Задержка растет линейно.
type retryPolicy struct {
	attempts int
	delay    time.Duration
}

var writeRetry = retryPolicy{attempts: 5, delay: 50 * time.Millisecond}

// isRetryableError проверяет, можно ли повторить операцию при данной ошибке
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr *moderncsqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return true
		}
		return false
	}

	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}

func (p retryPolicy) do(op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isRetryableError(lastErr) {
			return fmt.Errorf("%s: %w", op, lastErr)
		}
		if attempt < p.attempts {
			log.Printf("SQLite busy during %s, retry %d/%d", op, attempt, p.attempts-1)
			time.Sleep(p.delay * time.Duration(attempt))
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", op, p.attempts, lastErr)
}
