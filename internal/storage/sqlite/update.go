package sqlite

import (
	"time"

	"fraud-data-simulator/internal/models"
)

// CompleteRun фиксирует итоговые счетчики и статус completed
func (s *SQLiteStorage) CompleteRun(summary *models.DatasetSummary) error {
	return s.finishRun(summary, models.RunStatusCompleted, nil)
}

// FailRun помечает прогон как failed и сохраняет причину
func (s *SQLiteStorage) FailRun(summary *models.DatasetSummary, reason string) error {
	return s.finishRun(summary, models.RunStatusFailed, &reason)
}

func (s *SQLiteStorage) finishRun(summary *models.DatasetSummary, status string, reason *string) error {
	query := `
		UPDATE dataset_runs
		SET status = ?,
		    records_written = ?,
		    chunks_flushed = ?,
		    fraud_count = ?,
		    error_message = ?,
		    finished_at = ?
		WHERE run_id = ?
	`

	finishedAt := summary.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now()
	}

	return writeRetry.do("finish run", func() error {
		_, err := s.DB.Exec(query,
			status, summary.RecordsWritten, summary.ChunksFlushed, summary.FraudCount,
			reason, finishedAt.UTC(), summary.RunID,
		)
		return err
	})
}
