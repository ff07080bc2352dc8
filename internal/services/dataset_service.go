package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"fraud-data-simulator/internal/config"
	"fraud-data-simulator/internal/dataset"
	"fraud-data-simulator/internal/generator"
	"fraud-data-simulator/internal/kafka"
	"fraud-data-simulator/internal/logger"
	"fraud-data-simulator/internal/metrics"
	"fraud-data-simulator/internal/models"
	"fraud-data-simulator/internal/objstore"
	"fraud-data-simulator/internal/redis"
	"fraud-data-simulator/internal/storage"
)

// Dependencies внешние хранилища сервиса. Любое поле может быть nil, если интеграция выключена.
type Dependencies struct {
	Repo     storage.DatasetRepository
	Producer kafka.Producer
	Redis    redis.ClientInterface
	Store    objstore.ObjectStore
	Bucket   string
	Metrics  *metrics.Recorder
}

// DatasetServiceImpl реализует интерфейс DatasetService
type DatasetServiceImpl struct {
	opts      generator.Options
	generator config.GeneratorConfig
	deps      Dependencies
	tracker   *runTracker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	sampleMu sync.Mutex
	sampler  *generator.TransactionGenerator
}

// NewDatasetService создает новый сервис генерации
func NewDatasetService(cfg *config.Config, deps Dependencies) DatasetService {
	ctx, cancel := context.WithCancel(context.Background())
	return &DatasetServiceImpl{
		opts:      GeneratorOptions(cfg),
		generator: cfg.Generator,
		deps:      deps,
		tracker:   newRunTracker(),
		ctx:       ctx,
		cancel:    cancel,
		sampler:   generator.NewTransactionGenerator(GeneratorOptions(cfg)),
	}
}

// observers собирает наблюдателей прогона. Порядок важен: выгрузка в хранилище
// заполняет ObjectKey до того, как итог уходит в Kafka, Redis и память.
func (s *DatasetServiceImpl) observers() []dataset.Observer {
	var obs []dataset.Observer
	if s.deps.Repo != nil {
		obs = append(obs, &sqliteExporter{repo: s.deps.Repo})
	}
	if s.deps.Store != nil {
		obs = append(obs, &objectUploader{store: s.deps.Store, bucket: s.deps.Bucket})
	}
	if s.deps.Producer != nil {
		obs = append(obs, &kafkaNotifier{producer: s.deps.Producer})
	}
	if s.deps.Redis != nil {
		obs = append(obs, &redisStats{client: s.deps.Redis})
	}
	if s.deps.Metrics != nil {
		obs = append(obs, s.deps.Metrics)
	}
	return append(obs, s.tracker)
}

// prepare проверяет запрос и формирует параметры прогона
func (s *DatasetServiceImpl) prepare(req *models.DatasetRequest) (dataset.Job, generator.Options, error) {
	opts := s.opts
	if req.Seed != nil {
		opts.Seed = *req.Seed
	}

	chunkSize := req.ChunkSize
	if chunkSize == 0 {
		chunkSize = s.generator.ChunkSize
	}

	runID := "run_" + uuid.New().String()

	filename := req.Filename
	if filename == "" {
		filename = runID + ".csv"
	}
	base := filepath.Base(filename)
	if base != filename || base == "." || base == ".." {
		return dataset.Job{}, opts, fmt.Errorf("%w: %q", ErrInvalidFilename, req.Filename)
	}

	job := dataset.Job{
		RunID:        runID,
		Path:         filepath.Join(s.generator.OutputDir, base),
		TotalRecords: req.TotalRecords,
		ChunkSize:    chunkSize,
	}
	if err := job.Validate(); err != nil {
		return dataset.Job{}, opts, err
	}
	return job, opts, nil
}

// StartDataset запускает прогон в фоне и сразу возвращает run_id
func (s *DatasetServiceImpl) StartDataset(req *models.DatasetRequest) (*models.DatasetResponse, error) {
	job, opts, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	if err := s.track(job, opts); err != nil {
		return nil, err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if _, err := s.run(s.ctx, job, opts); err != nil {
			log.Printf("Background dataset %s failed: %v", job.RunID, err)
		}
	}()

	return &models.DatasetResponse{
		RunID:      job.RunID,
		Status:     models.RunStatusRunning,
		OutputPath: job.Path,
		Message:    "Dataset generation started",
	}, nil
}

// RunDataset выполняет прогон в текущей горутине
func (s *DatasetServiceImpl) RunDataset(ctx context.Context, req *models.DatasetRequest) (*models.DatasetSummary, error) {
	job, opts, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	if err := s.track(job, opts); err != nil {
		return nil, err
	}
	return s.run(ctx, job, opts)
}

func (s *DatasetServiceImpl) track(job dataset.Job, opts generator.Options) error {
	return s.tracker.begin(&models.DatasetRun{
		RunID:        job.RunID,
		OutputPath:   job.Path,
		TotalRecords: job.TotalRecords,
		ChunkSize:    job.ChunkSize,
		Seed:         opts.Seed,
		StartedAt:    time.Now(),
	})
}

func (s *DatasetServiceImpl) run(ctx context.Context, job dataset.Job, opts generator.Options) (*models.DatasetSummary, error) {
	summary, err := dataset.NewStreamer(opts, s.observers()...).Run(ctx, job)
	if err != nil {
		// Прогон мог упасть до первого уведомления наблюдателей (например, путь недоступен)
		s.tracker.fail(job.RunID, err)
		return summary, err
	}
	return summary, nil
}

// GetDataset возвращает прогон из SQLite, а если его там нет, из памяти процесса
func (s *DatasetServiceImpl) GetDataset(runID string) (*models.DatasetRun, error) {
	if s.deps.Repo != nil {
		run, err := s.deps.Repo.GetRun(runID)
		if err != nil {
			return nil, err
		}
		if run != nil {
			return run, nil
		}
	}

	if run := s.tracker.get(runID); run != nil {
		return run, nil
	}
	return nil, ErrRunNotFound
}

// GetDatasetSummary возвращает итог прогона
func (s *DatasetServiceImpl) GetDatasetSummary(runID string) (*models.DatasetSummary, error) {
	if s.deps.Redis != nil {
		summary, err := s.deps.Redis.GetRunSummary(runID)
		if err != nil {
			log.Printf("Warning: failed to read summary %s from redis: %v", runID, err)
		} else if summary != nil {
			return summary, nil
		}
	}

	if summary := s.tracker.summary(runID); summary != nil {
		return summary, nil
	}
	return nil, ErrRunNotFound
}

func (s *DatasetServiceImpl) ListDatasets(limit int) ([]*models.DatasetRun, error) {
	if s.deps.Repo != nil {
		return s.deps.Repo.GetAllRuns(limit)
	}
	return s.tracker.list(limit), nil
}

func (s *DatasetServiceImpl) GetDatasetTransactions(runID string, limit int) ([]*models.Transaction, error) {
	if s.deps.Repo == nil {
		return nil, ErrExportDisabled
	}
	return s.deps.Repo.GetTransactions(runID, limit)
}

func (s *DatasetServiceImpl) GetRiskStats(runID string) (*models.RiskStatsResponse, error) {
	if s.deps.Redis == nil {
		return nil, ErrStatsDisabled
	}

	if runID != "" {
		levels, err := s.deps.Redis.GetRunRiskStats(runID)
		if err != nil {
			return nil, err
		}
		if len(levels) == 0 {
			return nil, ErrRunNotFound
		}
		return &models.RiskStatsResponse{RunID: runID, RiskLevels: levels}, nil
	}

	levels, err := s.deps.Redis.GetRiskStats()
	if err != nil {
		return nil, err
	}
	frauds, err := s.deps.Redis.GetFraudStats()
	if err != nil {
		return nil, err
	}
	if frauds == nil {
		frauds = make(map[string]int64)
	}
	// Категории без мошенничества тоже попадают в ответ
	for _, category := range generator.Categories() {
		if _, ok := frauds[category]; !ok {
			frauds[category] = 0
		}
	}
	return &models.RiskStatsResponse{RiskLevels: levels, FraudByCategory: frauds}, nil
}

// ClearDatasets очищает реестр прогонов во всех включенных хранилищах
func (s *DatasetServiceImpl) ClearDatasets() error {
	if s.deps.Repo != nil {
		if err := s.deps.Repo.ClearAll(); err != nil {
			return fmt.Errorf("failed to clear sqlite: %w", err)
		}
	}
	if s.deps.Redis != nil {
		if err := s.deps.Redis.ClearDatasetData(); err != nil {
			return fmt.Errorf("failed to clear redis: %w", err)
		}
	}
	s.tracker.clear()
	return nil
}

// GenerateSample генерирует одну транзакцию вне прогонов
func (s *DatasetServiceImpl) GenerateSample() *models.Transaction {
	s.sampleMu.Lock()
	tx := s.sampler.GenerateRandomTransaction()
	s.sampleMu.Unlock()

	if s.deps.Metrics != nil {
		s.deps.Metrics.ObserveSample(tx)
	}
	logger.LogEvent(logger.EventSampleGenerated, serviceName, "generator", map[string]interface{}{
		"transaction_id": tx.TransactionID,
		"risk_score":     tx.RiskScore,
		"is_fraud":       tx.IsFraud,
	})
	return tx
}

// Shutdown отменяет фоновые прогоны и ждет их завершения или истечения ctx
func (s *DatasetServiceImpl) Shutdown(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
