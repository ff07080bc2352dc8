package mocks

import (
	"fraud-data-simulator/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockDatasetRepository является моком для storage.DatasetRepository интерфейса
type MockDatasetRepository struct {
	mock.Mock
}

func (m *MockDatasetRepository) CreateRun(run *models.DatasetRun) error {
	args := m.Called(run)
	return args.Error(0)
}

func (m *MockDatasetRepository) SaveChunk(runID string, chunk []models.Transaction) error {
	args := m.Called(runID, chunk)
	return args.Error(0)
}

func (m *MockDatasetRepository) CompleteRun(summary *models.DatasetSummary) error {
	args := m.Called(summary)
	return args.Error(0)
}

func (m *MockDatasetRepository) FailRun(summary *models.DatasetSummary, reason string) error {
	args := m.Called(summary, reason)
	return args.Error(0)
}

func (m *MockDatasetRepository) GetRun(runID string) (*models.DatasetRun, error) {
	args := m.Called(runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DatasetRun), args.Error(1)
}

func (m *MockDatasetRepository) GetAllRuns(limit int) ([]*models.DatasetRun, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DatasetRun), args.Error(1)
}

func (m *MockDatasetRepository) GetTransactions(runID string, limit int) ([]*models.Transaction, error) {
	args := m.Called(runID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

func (m *MockDatasetRepository) ClearAll() error {
	args := m.Called()
	return args.Error(0)
}
