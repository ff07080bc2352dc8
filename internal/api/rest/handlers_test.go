package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fraud-data-simulator/internal/dataset"
	"fraud-data-simulator/internal/logger"
	"fraud-data-simulator/internal/models"
	"fraud-data-simulator/internal/services"
	servicemocks "fraud-data-simulator/internal/services/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(handlers *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())

	RegisterRoutes(router.Group("/api/v1"), handlers)

	return router
}

func TestHandlers_StartDataset_Success(t *testing.T) {
	mockService := new(servicemocks.MockDatasetService)
	router := setupTestRouter(NewHandlers(mockService))

	response := &models.DatasetResponse{
		RunID:      "run_test_123",
		Status:     models.RunStatusRunning,
		OutputPath: "output/run_test_123.csv",
		Message:    "Dataset generation started",
	}
	mockService.On("StartDataset", mock.MatchedBy(func(req *models.DatasetRequest) bool {
		return req.TotalRecords == 1000 && req.ChunkSize == 400
	})).Return(response, nil)

	body, _ := json.Marshal(models.DatasetRequest{TotalRecords: 1000, ChunkSize: 400})
	req := httptest.NewRequest("POST", "/api/v1/datasets", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var result models.DatasetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "run_test_123", result.RunID)
	assert.Equal(t, models.RunStatusRunning, result.Status)

	mockService.AssertExpectations(t)
}

func TestHandlers_StartDataset_InvalidJSON(t *testing.T) {
	mockService := new(servicemocks.MockDatasetService)
	router := setupTestRouter(NewHandlers(mockService))

	req := httptest.NewRequest("POST", "/api/v1/datasets", bytes.NewBufferString("invalid json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "StartDataset")
}

func TestHandlers_StartDataset_MissingTotal(t *testing.T) {
	mockService := new(servicemocks.MockDatasetService)
	router := setupTestRouter(NewHandlers(mockService))

	req := httptest.NewRequest("POST", "/api/v1/datasets", bytes.NewBufferString(`{"chunk_size": 10}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "StartDataset")
}

func TestHandlers_StartDataset_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ChunkSize", fmt.Errorf("%w: got -1", dataset.ErrInvalidChunkSize)},
		{"Filename", fmt.Errorf("%w: ../etc", services.ErrInvalidFilename)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(servicemocks.MockDatasetService)
			router := setupTestRouter(NewHandlers(mockService))
			mockService.On("StartDataset", mock.Anything).Return(nil, tt.err)

			req := httptest.NewRequest("POST", "/api/v1/datasets", bytes.NewBufferString(`{"total_records": 10, "chunk_size": -1}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.err.Error())
		})
	}
}

func TestHandlers_StartDataset_OutputInUse(t *testing.T) {
	mockService := new(servicemocks.MockDatasetService)
	router := setupTestRouter(NewHandlers(mockService))
	mockService.On("StartDataset", mock.Anything).
		Return(nil, fmt.Errorf("%w: output/shared.csv is being written by run_1", services.ErrOutputInUse))

	req := httptest.NewRequest("POST", "/api/v1/datasets", bytes.NewBufferString(`{"total_records": 10, "filename": "shared.csv"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "run_1")
}

func TestHandlers_StartDataset_ServiceError(t *testing.T) {
	mockService := new(servicemocks.MockDatasetService)
	router := setupTestRouter(NewHandlers(mockService))
	mockService.On("StartDataset", mock.Anything).Return(nil, errors.New("database error"))

	req := httptest.NewRequest("POST", "/api/v1/datasets", bytes.NewBufferString(`{"total_records": 10}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandlers_ListDatasets(t *testing.T) {
	mockService := new(servicemocks.MockDatasetService)
	router := setupTestRouter(NewHandlers(mockService))

	runs := []*models.DatasetRun{
		{RunID: "run_1", Status: models.RunStatusCompleted, StartedAt: time.Now()},
		{RunID: "run_2", Status: models.RunStatusRunning, StartedAt: time.Now()},
	}
	mockService.On("ListDatasets", 50).Return(runs, nil)

	req := httptest.NewRequest("GET", "/api/v1/datasets?limit=50", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result map[string][]models.DatasetRun
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result["datasets"], 2)

	mockService.AssertExpectations(t)
}

func TestHandlers_ListDatasets_LimitOutOfRange(t *testing.T) {
	mockService := new(servicemocks.MockDatasetService)
	router := setupTestRouter(NewHandlers(mockService))
	mockService.On("ListDatasets", defaultLimit).Return([]*models.DatasetRun{}, nil)

	req := httptest.NewRequest("GET", "/api/v1/datasets?limit=1000", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestHandlers_GetDataset_WithSummary(t *testing.T) {
	mockService := new(servicemocks.MockDatasetService)
	router := setupTestRouter(NewHandlers(mockService))

	run := &models.DatasetRun{RunID: "run_1", Status: models.RunStatusCompleted, RecordsWritten: 1000}
	summary := &models.DatasetSummary{RunID: "run_1", RecordsWritten: 1000, FraudCount: 25}
	mockService.On("GetDataset", "run_1").Return(run, nil)
	mockService.On("GetDatasetSummary", "run_1").Return(summary, nil)

	req := httptest.NewRequest("GET", "/api/v1/datasets/run_1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Run     models.DatasetRun      `json:"run"`
		Summary *models.DatasetSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "run_1", result.Run.RunID)
	require.NotNil(t, result.Summary)
	assert.Equal(t, 25, result.Summary.FraudCount)
}

func TestHandlers_GetDataset_Running(t *testing.T) {
	mockService := new(servicemocks.MockDatasetService)
	router := setupTestRouter(NewHandlers(mockService))

	mockService.On("GetDataset", "run_1").Return(&models.DatasetRun{RunID: "run_1", Status: models.RunStatusRunning}, nil)
	mockService.On("GetDatasetSummary", "run_1").Return(nil, services.ErrRunNotFound)

	req := httptest.NewRequest("GET", "/api/v1/datasets/run_1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"summary"`)
}

func TestHandlers_GetDataset_NotFound(t *testing.T) {
	mockService := new(servicemocks.MockDatasetService)
	router := setupTestRouter(NewHandlers(mockService))
	mockService.On("GetDataset", "missing").Return(nil, fmt.Errorf("lookup: %w", services.ErrRunNotFound))

	req := httptest.NewRequest("GET", "/api/v1/datasets/missing", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertNotCalled(t, "GetDatasetSummary", mock.Anything)
}

func TestHandlers_GetDatasetTransactions(t *testing.T) {
	mockService := new(servicemocks.MockDatasetService)
	router := setupTestRouter(NewHandlers(mockService))

	txs := []*models.Transaction{{TransactionID: "tx-1", Amount: 10.5}}
	mockService.On("GetDatasetTransactions", "run_1", 10).Return(txs, nil)

	req := httptest.NewRequest("GET", "/api/v1/datasets/run_1/transactions?limit=10", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tx-1")
}

func TestHandlers_GetDatasetTransactions_ExportDisabled(t *testing.T) {
	mockService := new(servicemocks.MockDatasetService)
	router := setupTestRouter(NewHandlers(mockService))
	mockService.On("GetDatasetTransactions", "run_1", defaultLimit).Return(nil, services.ErrExportDisabled)

	req := httptest.NewRequest("GET", "/api/v1/datasets/run_1/transactions", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlers_ClearDatasets(t *testing.T) {
	mockService := new(servicemocks.MockDatasetService)
	router := setupTestRouter(NewHandlers(mockService))
	mockService.On("ClearDatasets").Return(nil)

	req := httptest.NewRequest("DELETE", "/api/v1/datasets", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestHandlers_ClearDatasets_Error(t *testing.T) {
	mockService := new(servicemocks.MockDatasetService)
	router := setupTestRouter(NewHandlers(mockService))
	mockService.On("ClearDatasets").Return(errors.New("database error"))

	req := httptest.NewRequest("DELETE", "/api/v1/datasets", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandlers_GetRiskStats(t *testing.T) {
	mockService := new(servicemocks.MockDatasetService)
	router := setupTestRouter(NewHandlers(mockService))

	stats := &models.RiskStatsResponse{
		RiskLevels:      map[string]int64{"low": 900, "medium": 80, "high": 20},
		FraudByCategory: map[string]int64{"financial": 12},
	}
	mockService.On("GetRiskStats", "").Return(stats, nil)

	req := httptest.NewRequest("GET", "/api/v1/risk-stats", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result models.RiskStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, int64(20), result.RiskLevels["high"])
	assert.Equal(t, int64(12), result.FraudByCategory["financial"])
}

func TestHandlers_GetRiskStats_Disabled(t *testing.T) {
	mockService := new(servicemocks.MockDatasetService)
	router := setupTestRouter(NewHandlers(mockService))
	mockService.On("GetRiskStats", "").Return(nil, services.ErrStatsDisabled)

	req := httptest.NewRequest("GET", "/api/v1/risk-stats", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlers_GetRiskStats_ForRun(t *testing.T) {
	mockService := new(servicemocks.MockDatasetService)
	router := setupTestRouter(NewHandlers(mockService))

	stats := &models.RiskStatsResponse{
		RunID:      "run_1",
		RiskLevels: map[string]int64{"low": 95, "high": 5},
	}
	mockService.On("GetRiskStats", "run_1").Return(stats, nil)
	mockService.On("GetRiskStats", "missing").Return(nil, services.ErrRunNotFound)

	req := httptest.NewRequest("GET", "/api/v1/risk-stats?run_id=run_1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "run_1", result["run_id"])
	assert.NotContains(t, result, "fraud_by_category")

	req = httptest.NewRequest("GET", "/api/v1/risk-stats?run_id=missing", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestHandlers_GenerateRandomTransaction(t *testing.T) {
	mockService := new(servicemocks.MockDatasetService)
	router := setupTestRouter(NewHandlers(mockService))

	tx := &models.Transaction{
		TransactionID:     "tx-1",
		UserID:            "user-1",
		Timestamp:         time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
		Amount:            1234.5,
		MerchantID:        "merchant_amazon",
		MerchantCategory:  "online",
		Geolocation:       "Berlin, BE, DE",
		TransactionStatus: "completed",
		RiskScore:         42,
	}
	mockService.On("GenerateSample").Return(tx)

	req := httptest.NewRequest("GET", "/api/v1/transactions/generate", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "tx-1", result["transaction_id"])
	assert.Equal(t, "2024-01-15 14:30:00", result["transaction_timestamp"])
	assert.Equal(t, "1234.50", result["transaction_amount"])
	assert.Equal(t, false, result["is_fraud"])
	assert.Equal(t, float64(42), result["risk_score"])
}

func TestSetupRouter_CommonEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockService := new(servicemocks.MockDatasetService)
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("fraudsim_records_generated_total 0\n"))
	})
	router := SetupRouter(NewHandlers(mockService), metricsHandler)

	for _, path := range []string{"/health", "/api/v1/events?limit=5", "/api/v1/stats", "/metrics"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	req := httptest.NewRequest("OPTIONS", "/api/v1/datasets", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupCommonEndpoints_EventsByRun(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupCommonEndpoints(router)

	logger.LogEvent(logger.EventChunkFlushed, "generator", "csv", map[string]interface{}{"run_id": "run_rest_events"})
	logger.LogEvent(logger.EventChunkFlushed, "generator", "csv", map[string]interface{}{"run_id": "run_other"})

	req := httptest.NewRequest("GET", "/api/v1/events?run_id=run_rest_events", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Events []map[string]interface{} `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Events, 1)
	assert.Equal(t, "run_rest_events", result.Events[0]["run_id"])
}
