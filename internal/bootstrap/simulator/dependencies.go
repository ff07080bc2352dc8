package simulator

import (
	"context"
	"log"
	"time"

	"fraud-data-simulator/internal/config"
	"fraud-data-simulator/internal/kafka"
	"fraud-data-simulator/internal/metrics"
	"fraud-data-simulator/internal/objstore"
	"fraud-data-simulator/internal/redis"
	"fraud-data-simulator/internal/services"
	"fraud-data-simulator/internal/storage/sqlite"
)

// Dependencies содержит все зависимости сервиса генерации
type Dependencies struct {
	StorageConn    *sqlite.SQLiteStorage
	KafkaProducer  kafka.Producer
	RedisClient    *redis.Client
	Metrics        *metrics.Recorder
	DatasetService services.DatasetService
}

// InitializeDependencies инициализирует интеграции, включенные в конфигурации.
// Недоступные Kafka, Redis и MinIO не мешают генерации CSV, ошибка SQLite фатальна.
func InitializeDependencies(cfg *config.Config) (*Dependencies, error) {
	deps := &Dependencies{Metrics: metrics.NewRecorder()}
	serviceDeps := services.Dependencies{Metrics: deps.Metrics}

	if cfg.DB.ExportEnabled {
		storage, err := sqlite.NewConnection(cfg)
		if err != nil {
			return nil, err
		}
		deps.StorageConn = storage
		serviceDeps.Repo = sqlite.NewRepository(storage)
		log.Printf("SQLite export enabled: %s", cfg.DB.DBPath)
	}

	if cfg.Kafka.Enabled {
		log.Println("Connecting to Kafka...")
		producer, err := kafka.NewProducer(cfg)
		if err != nil {
			log.Printf("Warning: Failed to create Kafka producer (dataset events disabled): %v", err)
		} else {
			log.Println("Kafka producer connected successfully")
			deps.KafkaProducer = producer
			serviceDeps.Producer = producer
		}
	}

	if cfg.Redis.Enabled {
		log.Println("Connecting to Redis...")
		redisClient, err := redis.NewClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis (risk stats disabled): %v", err)
		} else {
			log.Println("Redis connection established")
			deps.RedisClient = redisClient
			serviceDeps.Redis = redisClient
		}
	}

	if cfg.ObjectStore.Enabled {
		if store, err := connectObjectStore(cfg); err != nil {
			log.Printf("Warning: Object storage unavailable (uploads disabled): %v", err)
		} else {
			log.Printf("Object storage ready: %s/%s", cfg.ObjectStore.Endpoint, cfg.ObjectStore.Bucket)
			serviceDeps.Store = store
			serviceDeps.Bucket = cfg.ObjectStore.Bucket
		}
	}

	deps.DatasetService = services.NewDatasetService(cfg, serviceDeps)
	return deps, nil
}

func connectObjectStore(cfg *config.Config) (*objstore.MinioObjStore, error) {
	client, err := objstore.NewMinioClient(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store := objstore.NewMinioObjStore(client)
	if err := store.EnsureBucket(ctx, cfg.ObjectStore.Bucket); err != nil {
		return nil, err
	}
	return store, nil
}

// Close останавливает фоновые прогоны и закрывает соединения
func (d *Dependencies) Close() error {
	if d.DatasetService != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := d.DatasetService.Shutdown(ctx); err != nil {
			log.Printf("Warning: background runs did not stop in time: %v", err)
		}
	}
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			return err
		}
	}
	if d.RedisClient != nil {
		if err := d.RedisClient.Close(); err != nil {
			return err
		}
	}
	if d.StorageConn != nil {
		if err := d.StorageConn.Close(); err != nil {
			return err
		}
	}
	return nil
}
