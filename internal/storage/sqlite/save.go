package sqlite

import (
	"fmt"

	"fraud-data-simulator/internal/models"
)

// CreateRun регистрирует прогон со статусом running
func (s *SQLiteStorage) CreateRun(run *models.DatasetRun) error {
	query := `
		INSERT INTO dataset_runs (
			run_id, output_path, total_records, chunk_size, seed, status, started_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	status := run.Status
	if status == "" {
		status = models.RunStatusRunning
	}

	return writeRetry.do("create run", func() error {
		_, err := s.DB.Exec(query,
			run.RunID, run.OutputPath, run.TotalRecords, run.ChunkSize, run.Seed, status, run.StartedAt.UTC(),
		)
		return err
	})
}

// SaveChunk вставляет строки чанка одним батчем и увеличивает счетчики прогона
func (s *SQLiteStorage) SaveChunk(runID string, chunk []models.Transaction) error {
	return writeRetry.do("save chunk", func() error {
		return s.saveChunk(runID, chunk)
	})
}

func (s *SQLiteStorage) saveChunk(runID string, chunk []models.Transaction) error {
	dbTx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`
		INSERT INTO transactions (
			run_id, transaction_id, user_id, transaction_timestamp, transaction_amount,
			merchant_id, merchant_category, payment_method, ip_address, geolocation,
			device_id, device_type, transaction_type, transaction_status, is_fraud, risk_score
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	frauds := 0
	for i := range chunk {
		tx := &chunk[i]
		if tx.IsFraud {
			frauds++
		}
		_, err := stmt.Exec(
			runID, tx.TransactionID, tx.UserID, tx.FormattedTimestamp(), tx.FormattedAmount(),
			tx.MerchantID, tx.MerchantCategory, tx.PaymentMethod, tx.IPAddress, tx.Geolocation,
			tx.DeviceID, tx.DeviceType, tx.TransactionType, tx.TransactionStatus, tx.IsFraud, tx.RiskScore,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", tx.TransactionID, err)
		}
	}

	res, err := dbTx.Exec(`
		UPDATE dataset_runs
		SET records_written = records_written + ?,
		    chunks_flushed = chunks_flushed + 1,
		    fraud_count = fraud_count + ?
		WHERE run_id = ?
	`, len(chunk), frauds, runID)
	if err != nil {
		return fmt.Errorf("failed to update run progress: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %s not found", runID)
	}

	return dbTx.Commit()
}
