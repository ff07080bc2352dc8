package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fraud-data-simulator/internal/models"
)

const defaultListLimit = 100

const runColumns = `
	id, run_id, output_path, total_records, chunk_size, seed, status,
	records_written, chunks_flushed, fraud_count, error_message, started_at, finished_at
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*models.DatasetRun, error) {
	var run models.DatasetRun
	var errorMessage sql.NullString
	var finishedAt sql.NullTime

	err := row.Scan(
		&run.ID, &run.RunID, &run.OutputPath, &run.TotalRecords, &run.ChunkSize, &run.Seed, &run.Status,
		&run.RecordsWritten, &run.ChunksFlushed, &run.FraudCount, &errorMessage, &run.StartedAt, &finishedAt,
	)
	if err != nil {
		return nil, err
	}

	if errorMessage.Valid {
		run.ErrorMessage = &errorMessage.String
	}
	if finishedAt.Valid {
		run.FinishedAt = &finishedAt.Time
	}
	return &run, nil
}

// GetRun получает прогон по run_id
func (s *SQLiteStorage) GetRun(runID string) (*models.DatasetRun, error) {
	query := `SELECT ` + runColumns + ` FROM dataset_runs WHERE run_id = ?`

	run, err := scanRun(s.DB.QueryRow(query, runID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// GetAllRuns получает последние прогоны, новые первыми
func (s *SQLiteStorage) GetAllRuns(limit int) ([]*models.DatasetRun, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT ` + runColumns + ` FROM dataset_runs ORDER BY started_at DESC, id DESC LIMIT ?`

	rows, err := s.DB.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.DatasetRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetTransactions получает строки прогона в порядке записи
func (s *SQLiteStorage) GetTransactions(runID string, limit int) ([]*models.Transaction, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `
		SELECT transaction_id, user_id, transaction_timestamp, transaction_amount,
		       merchant_id, merchant_category, payment_method, ip_address, geolocation,
		       device_id, device_type, transaction_type, transaction_status, is_fraud, risk_score
		FROM transactions
		WHERE run_id = ?
		ORDER BY id
		LIMIT ?
	`

	rows, err := s.DB.Query(query, runID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var timestamp, amount string
		err := rows.Scan(
			&tx.TransactionID, &tx.UserID, &timestamp, &amount,
			&tx.MerchantID, &tx.MerchantCategory, &tx.PaymentMethod, &tx.IPAddress, &tx.Geolocation,
			&tx.DeviceID, &tx.DeviceType, &tx.TransactionType, &tx.TransactionStatus, &tx.IsFraud, &tx.RiskScore,
		)
		if err != nil {
			return nil, err
		}

		if tx.Timestamp, err = time.Parse(models.TimestampLayout, timestamp); err != nil {
			return nil, fmt.Errorf("invalid timestamp %q: %w", timestamp, err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
		}
		tx.Amount = d.InexactFloat64()

		transactions = append(transactions, &tx)
	}

	return transactions, rows.Err()
}
