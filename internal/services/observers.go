package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"fraud-data-simulator/internal/fraud"
	"fraud-data-simulator/internal/kafka"
	"fraud-data-simulator/internal/logger"
	"fraud-data-simulator/internal/models"
	"fraud-data-simulator/internal/objstore"
	"fraud-data-simulator/internal/redis"
	"fraud-data-simulator/internal/storage"
)

const serviceName = "simulator-service"

// sqliteExporter дублирует строки датасета в SQLite. Ошибка записи прерывает прогон.
type sqliteExporter struct {
	repo storage.DatasetRepository
}

func (e *sqliteExporter) OnStart(ctx context.Context, run *models.DatasetSummary) error {
	return e.repo.CreateRun(&models.DatasetRun{
		RunID:        run.RunID,
		OutputPath:   run.OutputPath,
		TotalRecords: run.TotalRecords,
		ChunkSize:    run.ChunkSize,
		Seed:         run.Seed,
		Status:       models.RunStatusRunning,
		StartedAt:    run.StartedAt,
	})
}

func (e *sqliteExporter) OnChunk(ctx context.Context, info models.ChunkInfo, chunk []models.Transaction) error {
	if err := e.repo.SaveChunk(info.RunID, chunk); err != nil {
		return fmt.Errorf("failed to export chunk to sqlite: %w", err)
	}

	logger.LogEvent(logger.EventSQLiteSaved, serviceName, "sqlite", map[string]interface{}{
		"run_id":      info.RunID,
		"chunk_index": info.Index,
		"rows":        len(chunk),
	})
	return nil
}

func (e *sqliteExporter) OnFinish(ctx context.Context, summary *models.DatasetSummary, runErr error) error {
	var err error
	if runErr != nil {
		err = e.repo.FailRun(summary, runErr.Error())
	} else {
		err = e.repo.CompleteRun(summary)
	}
	if err != nil {
		return err
	}

	logger.LogEvent(logger.EventDBUpdated, serviceName, "sqlite", map[string]interface{}{
		"run_id":          summary.RunID,
		"records_written": summary.RecordsWritten,
		"failed":          runErr != nil,
	})
	return nil
}

// kafkaNotifier публикует события о ходе прогона. Недоступность Kafka не останавливает генерацию.
type kafkaNotifier struct {
	producer kafka.Producer
}

func (n *kafkaNotifier) send(eventType string, data models.KafkaDatasetData) {
	event := &models.KafkaDatasetEvent{
		EventID:   "evt_" + uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
		Data:      data,
	}

	if err := n.producer.SendDatasetEvent(event); err != nil {
		log.Printf("Warning: failed to send %s event for run %s: %v", eventType, data.RunID, err)
		return
	}

	logger.LogEvent(logger.EventKafkaSent, serviceName, "kafka", map[string]interface{}{
		"run_id":     data.RunID,
		"event_id":   event.EventID,
		"event_type": eventType,
	})
}

func (n *kafkaNotifier) OnStart(ctx context.Context, run *models.DatasetSummary) error {
	n.send(kafka.EventDatasetStarted, models.KafkaDatasetData{
		RunID:        run.RunID,
		OutputPath:   run.OutputPath,
		TotalRecords: run.TotalRecords,
	})
	return nil
}

func (n *kafkaNotifier) OnChunk(ctx context.Context, info models.ChunkInfo, chunk []models.Transaction) error {
	n.send(kafka.EventChunkFlushed, models.KafkaDatasetData{
		RunID:          info.RunID,
		ChunkIndex:     info.Index,
		ChunkRecords:   info.Records,
		RecordsWritten: info.Written,
		TotalRecords:   info.Total,
		FraudCount:     info.Frauds,
	})
	return nil
}

func (n *kafkaNotifier) OnFinish(ctx context.Context, summary *models.DatasetSummary, runErr error) error {
	data := models.KafkaDatasetData{
		RunID:          summary.RunID,
		OutputPath:     summary.OutputPath,
		RecordsWritten: summary.RecordsWritten,
		TotalRecords:   summary.TotalRecords,
		FraudCount:     summary.FraudCount,
		ObjectKey:      summary.ObjectKey,
	}
	if runErr != nil {
		data.Error = runErr.Error()
		n.send(kafka.EventDatasetFailed, data)
		return nil
	}
	n.send(kafka.EventDatasetCompleted, data)
	return nil
}

// redisStats накапливает счетчики риска и сохраняет итог прогона
type redisStats struct {
	client redis.ClientInterface
}

func (r *redisStats) OnStart(ctx context.Context, run *models.DatasetSummary) error {
	return nil
}

func (r *redisStats) OnChunk(ctx context.Context, info models.ChunkInfo, chunk []models.Transaction) error {
	levels := make(map[string]int, 3)
	frauds := make(map[string]int)
	for i := range chunk {
		levels[fraud.CalculateRiskLevel(chunk[i].RiskScore)]++
		if chunk[i].IsFraud {
			frauds[chunk[i].MerchantCategory]++
		}
	}

	if err := r.client.IncrementRiskStats(info.RunID, levels); err != nil {
		log.Printf("Warning: failed to update risk stats for run %s: %v", info.RunID, err)
		return nil
	}
	if err := r.client.IncrementFraudStats(frauds); err != nil {
		log.Printf("Warning: failed to update fraud stats for run %s: %v", info.RunID, err)
		return nil
	}
	return nil
}

func (r *redisStats) OnFinish(ctx context.Context, summary *models.DatasetSummary, runErr error) error {
	if err := r.client.SaveRunSummary(summary); err != nil {
		return fmt.Errorf("failed to save summary to redis: %w", err)
	}

	logger.LogEvent(logger.EventRedisSaved, serviceName, "redis", map[string]interface{}{
		"run_id":      summary.RunID,
		"fraud_count": summary.FraudCount,
	})
	return nil
}

// objectUploader выгружает готовый CSV в объектное хранилище после успешного прогона
type objectUploader struct {
	store  objstore.ObjectStore
	bucket string
}

func (u *objectUploader) OnStart(ctx context.Context, run *models.DatasetSummary) error {
	return nil
}

func (u *objectUploader) OnChunk(ctx context.Context, info models.ChunkInfo, chunk []models.Transaction) error {
	return nil
}

func (u *objectUploader) OnFinish(ctx context.Context, summary *models.DatasetSummary, runErr error) error {
	if runErr != nil {
		return nil
	}

	key := objstore.ObjectName(summary.RunID, summary.OutputPath)
	size, err := objstore.UploadFile(ctx, u.store, u.bucket, key, summary.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to upload dataset: %w", err)
	}
	summary.ObjectKey = key

	log.Printf("Dataset %s uploaded to %s/%s (%d bytes)", summary.RunID, u.bucket, key, size)
	logger.LogEvent(logger.EventObjectUploaded, serviceName, "minio", map[string]interface{}{
		"run_id": summary.RunID,
		"bucket": u.bucket,
		"object": key,
		"size":   size,
	})
	return nil
}
