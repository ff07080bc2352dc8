package mocks

import (
	"context"

	"fraud-data-simulator/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockDatasetService является моком для services.DatasetService интерфейса
type MockDatasetService struct {
	mock.Mock
}

func (m *MockDatasetService) StartDataset(req *models.DatasetRequest) (*models.DatasetResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DatasetResponse), args.Error(1)
}

func (m *MockDatasetService) RunDataset(ctx context.Context, req *models.DatasetRequest) (*models.DatasetSummary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DatasetSummary), args.Error(1)
}

func (m *MockDatasetService) GetDataset(runID string) (*models.DatasetRun, error) {
	args := m.Called(runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DatasetRun), args.Error(1)
}

func (m *MockDatasetService) GetDatasetSummary(runID string) (*models.DatasetSummary, error) {
	args := m.Called(runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DatasetSummary), args.Error(1)
}

func (m *MockDatasetService) ListDatasets(limit int) ([]*models.DatasetRun, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DatasetRun), args.Error(1)
}

func (m *MockDatasetService) GetDatasetTransactions(runID string, limit int) ([]*models.Transaction, error) {
	args := m.Called(runID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

func (m *MockDatasetService) GetRiskStats(runID string) (*models.RiskStatsResponse, error) {
	args := m.Called(runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskStatsResponse), args.Error(1)
}

func (m *MockDatasetService) ClearDatasets() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockDatasetService) GenerateSample() *models.Transaction {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.Transaction)
}

func (m *MockDatasetService) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
