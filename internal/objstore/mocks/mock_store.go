package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockObjectStore является моком для objstore.ObjectStore интерфейса
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, bucket, obj string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, bucket, obj, reader, size, contentType)
	return args.Error(0)
}
