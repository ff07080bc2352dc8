package kafka

import (
	"fraud-data-simulator/internal/models"
)

// Типы событий о ходе генерации
const (
	EventDatasetStarted   = "dataset_started"
	EventChunkFlushed     = "chunk_flushed"
	EventDatasetCompleted = "dataset_completed"
	EventDatasetFailed    = "dataset_failed"
)

// Producer определяет интерфейс для отправки сообщений в Kafka
type Producer interface {
	SendDatasetEvent(event *models.KafkaDatasetEvent) error

	Close() error
}
