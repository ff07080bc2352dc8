package objstore

import (
	"context"
	"io"
)

// ObjectStore определяет интерфейс объектного хранилища для готовых датасетов
type ObjectStore interface {
	Put(ctx context.Context, bucket, obj string, reader io.Reader, size int64, contentType string) error
}

// Убеждаемся, что MinioObjStore реализует ObjectStore
var _ ObjectStore = (*MinioObjStore)(nil)
