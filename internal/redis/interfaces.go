package redis

import (
	"fraud-data-simulator/internal/models"
)

// ClientInterface определяет интерфейс для работы с Redis
// Реализуется типом Client
type ClientInterface interface {
	// SaveRunSummary сохраняет итог прогона
	SaveRunSummary(summary *models.DatasetSummary) error

	// GetRunSummary получает итог прогона (nil, если не найден или истек)
	GetRunSummary(runID string) (*models.DatasetSummary, error)

	// IncrementRiskStats увеличивает счетчики уровней риска (глобальные и по прогону)
	IncrementRiskStats(runID string, levels map[string]int) error

	// IncrementFraudStats увеличивает счетчики мошеннических транзакций по категориям
	IncrementFraudStats(byCategory map[string]int) error

	// GetRiskStats получает глобальные счетчики уровней риска
	GetRiskStats() (map[string]int64, error)

	// GetRunRiskStats получает счетчики уровней риска прогона
	GetRunRiskStats(runID string) (map[string]int64, error)

	// GetFraudStats получает счетчики мошенничества по категориям
	GetFraudStats() (map[string]int64, error)

	// ClearDatasetData очищает все данные прогонов
	ClearDatasetData() error

	// Close закрывает соединение с Redis
	Close() error
}

// Убеждаемся, что Client реализует ClientInterface
var _ ClientInterface = (*Client)(nil)
