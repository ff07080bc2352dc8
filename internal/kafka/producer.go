package kafka

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"

	"fraud-data-simulator/internal/config"
	"fraud-data-simulator/internal/models"
)

type ProducerImpl struct {
	producer sarama.SyncProducer
	topic    string
}

// NewSaramaConfig возвращает настройки синхронного продюсера
func NewSaramaConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	return config
}

func NewProducer(cfg *config.Config) (Producer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, NewSaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Println("Kafka producer created successfully")
	return NewProducerWithClient(producer, cfg.Kafka.DatasetTopic), nil
}

// NewProducerWithClient оборачивает готовый SyncProducer
func NewProducerWithClient(producer sarama.SyncProducer, topic string) Producer {
	return &ProducerImpl{
		producer: producer,
		topic:    topic,
	}
}

// SendDatasetEvent отправляет событие с ключом run_id, чтобы события прогона шли в одну партицию
func (p *ProducerImpl) SendDatasetEvent(event *models.KafkaDatasetEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.Data.RunID),
		Value:     sarama.ByteEncoder(data),
		Timestamp: time.Now(),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.EventType)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	log.Printf("Event %s sent to topic %s, partition %d, offset %d", event.EventType, p.topic, partition, offset)
	return nil
}

func (p *ProducerImpl) Close() error {
	return p.producer.Close()
}
