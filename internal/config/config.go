package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Generator   GeneratorConfig
	Fraud       FraudConfig
	DB          DBConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	ObjectStore ObjectStoreConfig
	Server      ServerConfig
}

type GeneratorConfig struct {
	OutputDir      string
	OutputFilename string
	TotalRecords   int
	ChunkSize      int
	Seed           int64
	ReferenceTime  time.Time // нулевое значение = текущее время
}

type FraudConfig struct {
	Threshold        int
	GateProbability  float64
	NoiseMin         int
	NoiseMax         int
	FraudPatternRate float64
	PrivateIPRate    float64
}

type DBConfig struct {
	DBPath        string // Путь к файлу SQLite
	ExportEnabled bool   // Дублировать сгенерированные строки в SQLite
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	Enabled  bool
}

type KafkaConfig struct {
	Brokers      []string
	DatasetTopic string
	Enabled      bool
}

type ObjectStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Enabled   bool
}

type ServerConfig struct {
	HTTPPort int
	GRPCPort int
}

func Load() *Config {
	// Загружаем .env файл, если он существует
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Generator: GeneratorConfig{
			OutputDir:      getEnv("OUTPUT_DIR", "output"),
			OutputFilename: getEnv("OUTPUT_FILENAME", "fraud_data.csv"),
			TotalRecords:   getEnvAsInt("TOTAL_RECORDS", 500000),
			ChunkSize:      getEnvAsInt("CHUNK_SIZE", 50000),
			Seed:           getEnvAsInt64("SEED", 42),
			ReferenceTime:  getEnvAsTime("REFERENCE_TIME", time.Time{}),
		},
		Fraud: FraudConfig{
			Threshold:        getEnvAsInt("FRAUD_THRESHOLD", 70),
			GateProbability:  getEnvAsFloat("FRAUD_GATE_PROBABILITY", 0.30),
			NoiseMin:         getEnvAsInt("RISK_NOISE_MIN", -5),
			NoiseMax:         getEnvAsInt("RISK_NOISE_MAX", 10),
			FraudPatternRate: getEnvAsFloat("FRAUD_PATTERN_RATE", 0.08),
			PrivateIPRate:    getEnvAsFloat("PRIVATE_IP_RATE", 0.05),
		},
		DB: DBConfig{
			DBPath:        getEnv("DB_PATH", "./data/fraud_sim.db"),
			ExportEnabled: getEnvAsBool("DB_EXPORT_ENABLED", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},
		Kafka: KafkaConfig{
			Brokers:      getEnvAsList("KAFKA_BROKERS", []string{"localhost:9092"}),
			DatasetTopic: getEnv("KAFKA_DATASET_TOPIC", "fraudsim.datasets.events"),
			Enabled:      getEnvAsBool("KAFKA_ENABLED", false),
		},
		ObjectStore: ObjectStoreConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "fraud-datasets"),
			UseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
			Enabled:   getEnvAsBool("MINIO_ENABLED", false),
		},
		Server: ServerConfig{
			HTTPPort: getEnvAsInt("HTTP_PORT", 8080),
			GRPCPort: getEnvAsInt("GRPC_PORT", 50051),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsTime принимает RFC3339 (2025-06-30T12:00:00Z)
func getEnvAsTime(key string, defaultValue time.Time) time.Time {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.Parse(time.RFC3339, valueStr)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, expected RFC3339", key, valueStr)
		return defaultValue
	}
	return value
}

// getEnvAsList разбирает список через запятую (broker1:9092,broker2:9092)
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var result []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}

// OutputPath возвращает путь к CSV-файлу
func (g GeneratorConfig) OutputPath() string {
	return filepath.Join(g.OutputDir, g.OutputFilename)
}

// RedisAddr возвращает адрес Redis в формате host:port
func (r RedisConfig) RedisAddr() string {
	return r.Host + ":" + r.Port
}
