package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"fraud-data-simulator/internal/config"
	"fraud-data-simulator/internal/models"
	"fraud-data-simulator/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) storage.DatasetRepository {
	t.Helper()

	cfg := &config.Config{
		DB: config.DBConfig{
			DBPath: filepath.Join(t.TempDir(), "test.db"),
		},
	}

	db, err := NewConnection(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db)
}

func newTestRun(runID string) *models.DatasetRun {
	return &models.DatasetRun{
		RunID:        runID,
		OutputPath:   "output/fraud_data.csv",
		TotalRecords: 3,
		ChunkSize:    2,
		Seed:         42,
		StartedAt:    time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC),
	}
}

func testChunk() []models.Transaction {
	return []models.Transaction{
		{
			TransactionID:     "tx-1",
			UserID:            "user-1",
			Timestamp:         time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
			Amount:            1234.5,
			MerchantID:        "merchant_paypal",
			MerchantCategory:  "financial",
			PaymentMethod:     "bank_transfer",
			IPAddress:         "10.1.2.3",
			Geolocation:       "Berlin, BE, DE",
			DeviceID:          "device_0042",
			DeviceType:        "mobile",
			TransactionType:   "transfer",
			TransactionStatus: "completed",
			IsFraud:           true,
			RiskScore:         88,
		},
		{
			TransactionID:     "tx-2",
			UserID:            "user-2",
			Timestamp:         time.Date(2025, 1, 2, 14, 0, 0, 0, time.UTC),
			Amount:            12.99,
			MerchantID:        "merchant_netflix",
			MerchantCategory:  "subscription",
			PaymentMethod:     "credit_card",
			IPAddress:         "8.8.8.8",
			Geolocation:       "London, ENG, GB",
			DeviceID:          "device_0007",
			DeviceType:        "desktop",
			TransactionType:   "purchase",
			TransactionStatus: "completed",
			RiskScore:         3,
		},
	}
}

func TestNewConnection_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "sim.db")
	db, err := NewConnection(&config.Config{DB: config.DBConfig{DBPath: dbPath}})
	require.NoError(t, err)
	defer db.Close()

	var count int
	err = db.DB.QueryRow(`SELECT COUNT(*) FROM dataset_runs`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRepository_CreateAndGetRun(t *testing.T) {
	repo := setupTestRepository(t)

	require.NoError(t, repo.CreateRun(newTestRun("run_1")))

	run, err := repo.GetRun("run_1")
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "run_1", run.RunID)
	assert.Equal(t, models.RunStatusRunning, run.Status)
	assert.Equal(t, 3, run.TotalRecords)
	assert.Equal(t, int64(42), run.Seed)
	assert.Nil(t, run.FinishedAt)
	assert.Nil(t, run.ErrorMessage)
	assert.True(t, run.StartedAt.Equal(time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)))
}

func TestRepository_GetRun_NotFound(t *testing.T) {
	repo := setupTestRepository(t)

	run, err := repo.GetRun("missing")
	assert.NoError(t, err)
	assert.Nil(t, run)
}

func TestRepository_CreateRun_Duplicate(t *testing.T) {
	repo := setupTestRepository(t)

	require.NoError(t, repo.CreateRun(newTestRun("run_dup")))
	assert.Error(t, repo.CreateRun(newTestRun("run_dup")))
}

func TestRepository_SaveChunk(t *testing.T) {
	repo := setupTestRepository(t)
	require.NoError(t, repo.CreateRun(newTestRun("run_chunk")))

	require.NoError(t, repo.SaveChunk("run_chunk", testChunk()))

	run, err := repo.GetRun("run_chunk")
	require.NoError(t, err)
	assert.Equal(t, 2, run.RecordsWritten)
	assert.Equal(t, 1, run.ChunksFlushed)
	assert.Equal(t, 1, run.FraudCount)

	txs, err := repo.GetTransactions("run_chunk", 10)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	first := txs[0]
	assert.Equal(t, "tx-1", first.TransactionID)
	assert.Equal(t, 1234.5, first.Amount)
	assert.Equal(t, "2025-01-02 03:04:05", first.FormattedTimestamp())
	assert.Equal(t, "Berlin, BE, DE", first.Geolocation)
	assert.True(t, first.IsFraud)
	assert.Equal(t, 88, first.RiskScore)

	assert.False(t, txs[1].IsFraud)
	assert.Equal(t, "12.99", txs[1].FormattedAmount())
}

func TestRepository_SaveChunk_UnknownRun(t *testing.T) {
	repo := setupTestRepository(t)

	err := repo.SaveChunk("missing", testChunk())
	assert.Error(t, err)

	txs, err := repo.GetTransactions("missing", 10)
	require.NoError(t, err)
	assert.Empty(t, txs, "failed chunk must be rolled back")
}

func TestRepository_GetTransactions_Limit(t *testing.T) {
	repo := setupTestRepository(t)
	require.NoError(t, repo.CreateRun(newTestRun("run_limit")))
	require.NoError(t, repo.SaveChunk("run_limit", testChunk()))
	require.NoError(t, repo.SaveChunk("run_limit", testChunk()))

	txs, err := repo.GetTransactions("run_limit", 3)
	require.NoError(t, err)
	assert.Len(t, txs, 3)

	run, err := repo.GetRun("run_limit")
	require.NoError(t, err)
	assert.Equal(t, 2, run.ChunksFlushed)
}

func TestRepository_CompleteRun(t *testing.T) {
	repo := setupTestRepository(t)
	require.NoError(t, repo.CreateRun(newTestRun("run_done")))

	err := repo.CompleteRun(&models.DatasetSummary{
		RunID:          "run_done",
		RecordsWritten: 3,
		ChunksFlushed:  2,
		FraudCount:     1,
		FinishedAt:     time.Date(2025, 6, 30, 12, 5, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	run, err := repo.GetRun("run_done")
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCompleted, run.Status)
	assert.Equal(t, 3, run.RecordsWritten)
	require.NotNil(t, run.FinishedAt)
	assert.True(t, run.FinishedAt.Equal(time.Date(2025, 6, 30, 12, 5, 0, 0, time.UTC)))
}

func TestRepository_FailRun(t *testing.T) {
	repo := setupTestRepository(t)
	require.NoError(t, repo.CreateRun(newTestRun("run_failed")))

	err := repo.FailRun(&models.DatasetSummary{RunID: "run_failed", RecordsWritten: 2, ChunksFlushed: 1}, "disk full")
	require.NoError(t, err)

	run, err := repo.GetRun("run_failed")
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusFailed, run.Status)
	require.NotNil(t, run.ErrorMessage)
	assert.Equal(t, "disk full", *run.ErrorMessage)
	assert.NotNil(t, run.FinishedAt)
}

func TestRepository_GetAllRuns(t *testing.T) {
	repo := setupTestRepository(t)

	for i, id := range []string{"run_a", "run_b", "run_c"} {
		run := newTestRun(id)
		run.StartedAt = run.StartedAt.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.CreateRun(run))
	}

	runs, err := repo.GetAllRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run_c", runs[0].RunID)
	assert.Equal(t, "run_b", runs[1].RunID)

	runs, err = repo.GetAllRuns(0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestRepository_ClearAll(t *testing.T) {
	repo := setupTestRepository(t)
	require.NoError(t, repo.CreateRun(newTestRun("run_clear")))
	require.NoError(t, repo.SaveChunk("run_clear", testChunk()))

	require.NoError(t, repo.ClearAll())

	runs, err := repo.GetAllRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)

	txs, err := repo.GetTransactions("run_clear", 10)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestIsRetryableError(t *testing.T) {
	assert.False(t, isRetryableError(nil))
	assert.True(t, isRetryableError(errors.New("database is locked")))
	assert.True(t, isRetryableError(errors.New("SQLITE_BUSY")))
	assert.False(t, isRetryableError(errors.New("UNIQUE constraint failed")))
}

func TestRetryPolicy(t *testing.T) {
	policy := retryPolicy{attempts: 5, delay: time.Millisecond}

	attempts := 0
	err := policy.do("test", func() error {
		attempts++
		if attempts < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)

	policy.attempts = 3
	attempts = 0
	err = policy.do("test", func() error {
		attempts++
		return errors.New("database is locked")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test failed after 3 attempts")
	assert.Equal(t, 3, attempts)

	attempts = 0
	err = policy.do("insert", func() error {
		attempts++
		return errors.New("syntax error")
	})
	require.Error(t, err)
	assert.Equal(t, "insert: syntax error", err.Error())
	assert.Equal(t, 1, attempts)
}
