package storage

import (
	"fraud-data-simulator/internal/models"
)

// DatasetRepository определяет интерфейс для реестра прогонов и выгрузки строк датасета
type DatasetRepository interface {
	// CreateRun регистрирует прогон со статусом running
	CreateRun(run *models.DatasetRun) error

	// SaveChunk сохраняет строки чанка и обновляет прогресс прогона в одной транзакции
	SaveChunk(runID string, chunk []models.Transaction) error

	// CompleteRun фиксирует итог успешного прогона
	CompleteRun(summary *models.DatasetSummary) error

	// FailRun помечает прогон как failed
	FailRun(summary *models.DatasetSummary, reason string) error

	// GetRun получает прогон по run_id (nil, если не найден)
	GetRun(runID string) (*models.DatasetRun, error)

	// GetAllRuns получает последние прогоны
	GetAllRuns(limit int) ([]*models.DatasetRun, error)

	// GetTransactions получает выгруженные строки прогона
	GetTransactions(runID string, limit int) ([]*models.Transaction, error)

	// ClearAll удаляет все прогоны и строки
	ClearAll() error
}
