package sqlite

import (
	"fraud-data-simulator/internal/models"
	"fraud-data-simulator/internal/storage"
)

// Repository реализует интерфейс DatasetRepository для SQLite
type Repository struct {
	storage *SQLiteStorage
}

// NewRepository создает новый репозиторий SQLite
func NewRepository(storage *SQLiteStorage) storage.DatasetRepository {
	return &Repository{storage: storage}
}

func (r *Repository) CreateRun(run *models.DatasetRun) error {
	return r.storage.CreateRun(run)
}

func (r *Repository) SaveChunk(runID string, chunk []models.Transaction) error {
	return r.storage.SaveChunk(runID, chunk)
}

func (r *Repository) CompleteRun(summary *models.DatasetSummary) error {
	return r.storage.CompleteRun(summary)
}

func (r *Repository) FailRun(summary *models.DatasetSummary, reason string) error {
	return r.storage.FailRun(summary, reason)
}

func (r *Repository) GetRun(runID string) (*models.DatasetRun, error) {
	return r.storage.GetRun(runID)
}

func (r *Repository) GetAllRuns(limit int) ([]*models.DatasetRun, error) {
	return r.storage.GetAllRuns(limit)
}

func (r *Repository) GetTransactions(runID string, limit int) ([]*models.Transaction, error) {
	return r.storage.GetTransactions(runID, limit)
}

func (r *Repository) ClearAll() error {
	return r.storage.ClearAll()
}
