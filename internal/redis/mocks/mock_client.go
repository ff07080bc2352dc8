package mocks

import (
	"fraud-data-simulator/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockClientInterface является моком для redis.ClientInterface интерфейса
type MockClientInterface struct {
	mock.Mock
}

func (m *MockClientInterface) SaveRunSummary(summary *models.DatasetSummary) error {
	args := m.Called(summary)
	return args.Error(0)
}

func (m *MockClientInterface) GetRunSummary(runID string) (*models.DatasetSummary, error) {
	args := m.Called(runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DatasetSummary), args.Error(1)
}

func (m *MockClientInterface) IncrementRiskStats(runID string, levels map[string]int) error {
	args := m.Called(runID, levels)
	return args.Error(0)
}

func (m *MockClientInterface) IncrementFraudStats(byCategory map[string]int) error {
	args := m.Called(byCategory)
	return args.Error(0)
}

func (m *MockClientInterface) GetRiskStats() (map[string]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockClientInterface) GetRunRiskStats(runID string) (map[string]int64, error) {
	args := m.Called(runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockClientInterface) GetFraudStats() (map[string]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockClientInterface) ClearDatasetData() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockClientInterface) Close() error {
	args := m.Called()
	return args.Error(0)
}
