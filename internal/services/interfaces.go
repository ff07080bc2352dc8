package services

import (
	"context"
	"errors"

	"fraud-data-simulator/internal/models"
)

var (
	ErrRunNotFound     = errors.New("dataset run not found")
	ErrExportDisabled  = errors.New("sqlite export is disabled")
	ErrStatsDisabled   = errors.New("redis stats are disabled")
	ErrInvalidFilename = errors.New("invalid output filename")
	ErrOutputInUse     = errors.New("output file is in use by another run")
)

// DatasetService определяет интерфейс для запуска и просмотра прогонов генерации
type DatasetService interface {
	// StartDataset проверяет параметры и запускает прогон в фоне
	StartDataset(req *models.DatasetRequest) (*models.DatasetResponse, error)

	// RunDataset выполняет прогон синхронно
	RunDataset(ctx context.Context, req *models.DatasetRequest) (*models.DatasetSummary, error)

	// GetDataset возвращает состояние прогона
	GetDataset(runID string) (*models.DatasetRun, error)

	// GetDatasetSummary возвращает итог прогона (из Redis или памяти)
	GetDatasetSummary(runID string) (*models.DatasetSummary, error)

	// ListDatasets возвращает последние прогоны
	ListDatasets(limit int) ([]*models.DatasetRun, error)

	// GetDatasetTransactions возвращает строки прогона, выгруженные в SQLite
	GetDatasetTransactions(runID string, limit int) ([]*models.Transaction, error)

	// GetRiskStats возвращает накопленные счетчики риска из Redis:
	// глобальные при пустом runID, иначе счетчики одного прогона
	GetRiskStats(runID string) (*models.RiskStatsResponse, error)

	// ClearDatasets очищает реестр прогонов и статистику
	ClearDatasets() error

	// GenerateSample генерирует одну транзакцию
	GenerateSample() *models.Transaction

	// Shutdown отменяет фоновые прогоны и ждет их завершения
	Shutdown(ctx context.Context) error
}
