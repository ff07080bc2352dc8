package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"fraud-data-simulator/internal/fraud"
	"fraud-data-simulator/internal/generator"
	"fraud-data-simulator/internal/logger"
	"fraud-data-simulator/internal/models"
)

// DefaultChunkSize размер чанка по умолчанию
const DefaultChunkSize = 50_000

var (
	ErrInvalidTotalRecords = errors.New("total_records must be positive")
	ErrInvalidChunkSize    = errors.New("chunk_size must be positive")
)

// WriteError ошибка записи чанка. Уже сброшенные чанки остаются в файле.
type WriteError struct {
	Path  string
	Chunk int
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write chunk %d to %s: %v", e.Chunk, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Observer получает уведомления о ходе генерации (экспорт в БД, Kafka, Redis, метрики).
// Ошибка из OnStart или OnChunk прерывает прогон, ошибка OnFinish только логируется.
// Срез chunk переиспользуется после возврата из OnChunk, хранить его нельзя.
type Observer interface {
	OnStart(ctx context.Context, run *models.DatasetSummary) error
	OnChunk(ctx context.Context, info models.ChunkInfo, chunk []models.Transaction) error
	OnFinish(ctx context.Context, run *models.DatasetSummary, runErr error) error
}

// Job параметры одного прогона
type Job struct {
	RunID        string
	Path         string
	TotalRecords int
	ChunkSize    int
}

// Streamer генерирует записи и пишет их в CSV чанками
type Streamer struct {
	opts      generator.Options
	observers []Observer
	openFile  func(path string) (io.WriteCloser, error)
}

func NewStreamer(opts generator.Options, observers ...Observer) *Streamer {
	return &Streamer{
		opts:      opts,
		observers: observers,
		openFile:  createOutputFile,
	}
}

// Generate создает (или перезаписывает) CSV-файл с totalRecords записями
func Generate(path string, totalRecords, chunkSize int) error {
	_, err := NewStreamer(generator.DefaultOptions()).Run(context.Background(), Job{
		Path:         path,
		TotalRecords: totalRecords,
		ChunkSize:    chunkSize,
	})
	return err
}

// Validate проверяет параметры прогона до создания файла
func (j Job) Validate() error {
	if j.TotalRecords <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTotalRecords, j.TotalRecords)
	}
	if j.ChunkSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidChunkSize, j.ChunkSize)
	}
	return nil
}

// Run выполняет прогон. Файл открывается до генерации первой записи,
// в памяти одновременно находится не больше одного чанка.
func (s *Streamer) Run(ctx context.Context, job Job) (*models.DatasetSummary, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}
	if job.RunID == "" {
		job.RunID = "run_" + uuid.New().String()
	}

	out, err := s.openFile(job.Path)
	if err != nil {
		return nil, fmt.Errorf("output path is not writable: %w", err)
	}

	summary := &models.DatasetSummary{
		RunID:        job.RunID,
		OutputPath:   job.Path,
		TotalRecords: job.TotalRecords,
		ChunkSize:    job.ChunkSize,
		RiskLevels:   make(map[string]int),
		Seed:         s.opts.Seed,
		StartedAt:    time.Now(),
	}

	log.Printf("Generating %d records in chunks of %d -> %s", job.TotalRecords, job.ChunkSize, job.Path)
	logger.LogEvent(logger.EventDatasetStarted, "generator", "csv", map[string]interface{}{
		"run_id":        job.RunID,
		"output_path":   job.Path,
		"total_records": job.TotalRecords,
		"chunk_size":    job.ChunkSize,
	})

	runErr := s.stream(ctx, job, out, summary)
	if closeErr := out.Close(); closeErr != nil && runErr == nil {
		runErr = &WriteError{Path: job.Path, Chunk: summary.ChunksFlushed, Err: closeErr}
	}
	summary.FinishedAt = time.Now()
	if summary.RecordsWritten > 0 {
		summary.FraudRate = float64(summary.FraudCount) / float64(summary.RecordsWritten)
	}

	s.finish(ctx, summary, runErr)
	return summary, runErr
}

func (s *Streamer) stream(ctx context.Context, job Job, out io.Writer, summary *models.DatasetSummary) error {
	for _, o := range s.observers {
		if err := o.OnStart(ctx, summary); err != nil {
			return fmt.Errorf("failed to start run: %w", err)
		}
	}

	gen := generator.NewSeededTransactionGenerator(s.opts)
	pool := gen.NewUserPool(job.TotalRecords)
	writer := newCSVChunkWriter(out)

	chunk := make([]models.Transaction, 0, min(job.ChunkSize, job.TotalRecords))
	for summary.RecordsWritten < job.TotalRecords {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("generation cancelled after %d records: %w", summary.RecordsWritten, err)
		}

		n := min(job.ChunkSize, job.TotalRecords-summary.RecordsWritten)
		chunk = chunk[:0]
		frauds := 0
		for i := 0; i < n; i++ {
			tx := gen.GenerateTransaction(pool)
			if tx.IsFraud {
				frauds++
			}
			summary.RiskLevels[fraud.CalculateRiskLevel(tx.RiskScore)]++
			chunk = append(chunk, *tx)
		}

		started := time.Now()
		if err := writer.WriteChunk(chunk); err != nil {
			return &WriteError{Path: job.Path, Chunk: summary.ChunksFlushed + 1, Err: err}
		}

		summary.ChunksFlushed++
		summary.RecordsWritten += n
		summary.FraudCount += frauds

		info := models.ChunkInfo{
			RunID:    job.RunID,
			Index:    summary.ChunksFlushed,
			Records:  n,
			Written:  summary.RecordsWritten,
			Total:    job.TotalRecords,
			Frauds:   frauds,
			Duration: time.Since(started),
		}
		s.reportProgress(info)

		for _, o := range s.observers {
			if err := o.OnChunk(ctx, info, chunk); err != nil {
				return fmt.Errorf("failed to process chunk %d: %w", info.Index, err)
			}
		}
	}

	return nil
}

func (s *Streamer) reportProgress(info models.ChunkInfo) {
	log.Printf("Chunk %d flushed: %d/%d records (%.1f%%)",
		info.Index, info.Written, info.Total, float64(info.Written)/float64(info.Total)*100)

	logger.LogEvent(logger.EventChunkFlushed, "generator", "csv", map[string]interface{}{
		"run_id":          info.RunID,
		"chunk_index":     info.Index,
		"chunk_records":   info.Records,
		"records_written": info.Written,
		"total_records":   info.Total,
		"fraud_count":     info.Frauds,
	})
}

func (s *Streamer) finish(ctx context.Context, summary *models.DatasetSummary, runErr error) {
	if runErr != nil {
		log.Printf("Dataset %s failed after %d records: %v", summary.RunID, summary.RecordsWritten, runErr)
		logger.LogEvent(logger.EventDatasetFailed, "generator", "csv", map[string]interface{}{
			"run_id":          summary.RunID,
			"records_written": summary.RecordsWritten,
			"error":           runErr.Error(),
		})
	} else {
		absPath, err := filepath.Abs(summary.OutputPath)
		if err != nil {
			absPath = summary.OutputPath
		}
		log.Printf("CSV saved to %s (%d records, %d frauds, %.2f%%)",
			absPath, summary.RecordsWritten, summary.FraudCount, summary.FraudRate*100)
		logger.LogEvent(logger.EventDatasetCompleted, "generator", "csv", map[string]interface{}{
			"run_id":          summary.RunID,
			"records_written": summary.RecordsWritten,
			"chunks_flushed":  summary.ChunksFlushed,
			"fraud_count":     summary.FraudCount,
		})
	}

	for _, o := range s.observers {
		if err := o.OnFinish(ctx, summary, runErr); err != nil {
			log.Printf("Warning: observer failed to finish run %s: %v", summary.RunID, err)
		}
	}
}

// createOutputFile создает каталог и открывает файл на перезапись
func createOutputFile(path string) (io.WriteCloser, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
}
