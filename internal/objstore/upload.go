package objstore

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
)

const csvContentType = "text/csv"

// ObjectName возвращает имя объекта для файла прогона: datasets/<run_id>/<file>
func ObjectName(runID, filePath string) string {
	return path.Join("datasets", runID, filepath.Base(filePath))
}

// UploadFile загружает готовый CSV в хранилище потоково, без чтения файла в память
func UploadFile(ctx context.Context, store ObjectStore, bucket, obj, filePath string) (int64, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", filePath, err)
	}

	if err := store.Put(ctx, bucket, obj, f, info.Size(), csvContentType); err != nil {
		return 0, err
	}
	return info.Size(), nil
}
