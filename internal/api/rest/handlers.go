package rest

import (
	"errors"
	"net/http"
	"strconv"

	"fraud-data-simulator/internal/dataset"
	"fraud-data-simulator/internal/logger"
	"fraud-data-simulator/internal/models"
	"fraud-data-simulator/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

type Handlers struct {
	datasetService services.DatasetService
}

// Создает новые обработчики REST API
func NewHandlers(datasetService services.DatasetService) *Handlers {
	return &Handlers{datasetService: datasetService}
}

func parseLimit(c *gin.Context) int {
	limit := defaultLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= maxLimit {
			limit = parsed
		}
	}
	return limit
}

func isValidationError(err error) bool {
	return errors.Is(err, dataset.ErrInvalidTotalRecords) ||
		errors.Is(err, dataset.ErrInvalidChunkSize) ||
		errors.Is(err, services.ErrInvalidFilename)
}

// StartDataset запускает генерацию датасета
// @Summary Запустить генерацию датасета
// @Description Проверяет параметры и запускает генерацию CSV в фоне. Возвращает run_id для отслеживания прогресса.
// @Tags datasets
// @Accept json
// @Produce json
// @Param request body models.DatasetRequest true "Параметры генерации"
// @Success 202 {object} models.DatasetResponse "Генерация запущена"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Файл уже пишется другим прогоном"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /datasets [post]
func (h *Handlers) StartDataset(c *gin.Context) {
	var req models.DatasetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.datasetService.StartDataset(&req)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, services.ErrOutputInUse) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start dataset generation"})
		return
	}

	c.JSON(http.StatusAccepted, response)
}

// ListDatasets возвращает последние прогоны
// @Summary Получить список прогонов
// @Tags datasets
// @Produce json
// @Param limit query int false "Лимит результатов (максимум 500)" default(100)
// @Success 200 {object} map[string]interface{} "Список прогонов"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /datasets [get]
func (h *Handlers) ListDatasets(c *gin.Context) {
	runs, err := h.datasetService.ListDatasets(parseLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get datasets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"datasets": runs})
}

// GetDataset возвращает состояние прогона
// @Summary Получить состояние прогона
// @Description Возвращает прогресс и итог прогона. Поле summary заполняется после завершения.
// @Tags datasets
// @Produce json
// @Param run_id path string true "ID прогона"
// @Success 200 {object} map[string]interface{} "Состояние прогона"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /datasets/{run_id} [get]
func (h *Handlers) GetDataset(c *gin.Context) {
	runID := c.Param("run_id")

	run, err := h.datasetService.GetDataset(runID)
	if errors.Is(err, services.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get dataset"})
		return
	}

	response := gin.H{"run": run}
	if summary, err := h.datasetService.GetDatasetSummary(runID); err == nil {
		response["summary"] = summary
	}

	c.JSON(http.StatusOK, response)
}

// GetDatasetTransactions возвращает строки прогона, выгруженные в SQLite
// @Summary Получить строки датасета
// @Tags datasets
// @Produce json
// @Param run_id path string true "ID прогона"
// @Param limit query int false "Лимит результатов (максимум 500)" default(100)
// @Success 200 {object} map[string]interface{} "Строки датасета"
// @Failure 404 {object} map[string]string "SQLite export disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /datasets/{run_id}/transactions [get]
func (h *Handlers) GetDatasetTransactions(c *gin.Context) {
	transactions, err := h.datasetService.GetDatasetTransactions(c.Param("run_id"), parseLimit(c))
	if errors.Is(err, services.ErrExportDisabled) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// ClearDatasets очищает реестр прогонов
// @Summary Очистить реестр прогонов
// @Description Удаляет прогоны и строки из SQLite и статистику из Redis. CSV-файлы на диске не трогаются.
// @Tags datasets
// @Produce json
// @Success 200 {object} map[string]interface{} "Реестр очищен"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /datasets [delete]
func (h *Handlers) ClearDatasets(c *gin.Context) {
	if err := h.datasetService.ClearDatasets(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear datasets"})
		return
	}

	logger.LogEvent(logger.EventDBUpdated, "simulator-service", "sqlite", map[string]interface{}{
		"action": "datasets_cleared",
	})

	c.JSON(http.StatusOK, gin.H{"message": "All datasets cleared successfully"})
}

// GetRiskStats возвращает накопленные счетчики риска
// @Summary Статистика рисков
// @Description Без run_id возвращает глобальные счетчики по уровням и категориям, с run_id только уровни риска прогона.
// @Tags datasets
// @Produce json
// @Param run_id query string false "ID прогона"
// @Success 200 {object} models.RiskStatsResponse "Счетчики по уровням риска и категориям"
// @Failure 404 {object} map[string]string "Redis stats disabled или прогон не найден"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /risk-stats [get]
func (h *Handlers) GetRiskStats(c *gin.Context) {
	stats, err := h.datasetService.GetRiskStats(c.Query("run_id"))
	if errors.Is(err, services.ErrStatsDisabled) || errors.Is(err, services.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get risk stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GenerateRandomTransaction генерирует случайную транзакцию
// @Summary Сгенерировать случайную транзакцию
// @Description Генерирует одну транзакцию с risk_score и is_fraud
// @Tags transactions
// @Produce json
// @Success 200 {object} models.Transaction "Сгенерированная транзакция"
// @Router /transactions/generate [get]
func (h *Handlers) GenerateRandomTransaction(c *gin.Context) {
	tx := h.datasetService.GenerateSample()

	c.JSON(http.StatusOK, gin.H{
		"transaction_id":        tx.TransactionID,
		"user_id":               tx.UserID,
		"transaction_timestamp": tx.FormattedTimestamp(),
		"transaction_amount":    tx.FormattedAmount(),
		"merchant_id":           tx.MerchantID,
		"merchant_category":     tx.MerchantCategory,
		"payment_method":        tx.PaymentMethod,
		"ip_address":            tx.IPAddress,
		"geolocation":           tx.Geolocation,
		"device_id":             tx.DeviceID,
		"device_type":           tx.DeviceType,
		"transaction_type":      tx.TransactionType,
		"transaction_status":    tx.TransactionStatus,
		"is_fraud":              tx.IsFraud,
		"risk_score":            tx.RiskScore,
		"risk_flags":            tx.RiskFlags,
	})
}
