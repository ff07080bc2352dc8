package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout формат времени транзакции в выгрузке
const TimestampLayout = "2006-01-02 15:04:05"

// CSVHeader порядок колонок в выгрузке. Менять нельзя: на него опираются потребители датасета.
var CSVHeader = []string{
	"transaction_id",
	"user_id",
	"transaction_timestamp",
	"transaction_amount",
	"merchant_id",
	"merchant_category",
	"payment_method",
	"ip_address",
	"geolocation",
	"device_id",
	"device_type",
	"transaction_type",
	"transaction_status",
	"is_fraud",
	"risk_score",
}

// Transaction представляет одну синтетическую транзакцию (строку датасета)
type Transaction struct {
	TransactionID     string    `json:"transaction_id"`
	UserID            string    `json:"user_id"`
	Timestamp         time.Time `json:"transaction_timestamp"`
	Amount            float64   `json:"transaction_amount"`
	MerchantID        string    `json:"merchant_id"`
	MerchantCategory  string    `json:"merchant_category"`
	PaymentMethod     string    `json:"payment_method"`
	IPAddress         string    `json:"ip_address"`
	Geolocation       string    `json:"geolocation"`
	DeviceID          string    `json:"device_id"`
	DeviceType        string    `json:"device_type"`
	TransactionType   string    `json:"transaction_type"`
	TransactionStatus string    `json:"transaction_status"`
	IsFraud           bool      `json:"is_fraud"`
	RiskScore         int       `json:"risk_score"`

	// Не выгружаются: нужны только для анализа и статистики
	Country      string   `json:"country"`
	PrivateIP    bool     `json:"-"`
	FraudPattern bool     `json:"-"`
	RiskFlags    []string `json:"risk_flags,omitempty"`
}

// FormattedTimestamp возвращает время в формате YYYY-MM-DD HH:MM:SS (UTC)
func (t *Transaction) FormattedTimestamp() string {
	return t.Timestamp.UTC().Format(TimestampLayout)
}

// FormattedAmount возвращает сумму с двумя знаками после запятой
func (t *Transaction) FormattedAmount() string {
	return decimal.NewFromFloat(t.Amount).StringFixed(2)
}

// CSVRecord возвращает поля в порядке CSVHeader. is_fraud выгружается как true/false.
func (t *Transaction) CSVRecord() []string {
	return []string{
		t.TransactionID,
		t.UserID,
		t.FormattedTimestamp(),
		t.FormattedAmount(),
		t.MerchantID,
		t.MerchantCategory,
		t.PaymentMethod,
		t.IPAddress,
		t.Geolocation,
		t.DeviceID,
		t.DeviceType,
		t.TransactionType,
		t.TransactionStatus,
		strconv.FormatBool(t.IsFraud),
		strconv.Itoa(t.RiskScore),
	}
}

// Статусы прогона генерации
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// DatasetRequest представляет запрос на генерацию датасета
type DatasetRequest struct {
	TotalRecords int    `json:"total_records" binding:"required,gt=0"`
	ChunkSize    int    `json:"chunk_size"`
	Filename     string `json:"filename"`
	Seed         *int64 `json:"seed,omitempty"`
}

// DatasetResponse представляет ответ на запуск генерации
type DatasetResponse struct {
	RunID      string `json:"run_id"`
	Status     string `json:"status"`
	OutputPath string `json:"output_path"`
	Message    string `json:"message"`
}

// DatasetSummary итоговая статистика прогона
type DatasetSummary struct {
	RunID          string         `json:"run_id"`
	OutputPath     string         `json:"output_path"`
	TotalRecords   int            `json:"total_records"`
	ChunkSize      int            `json:"chunk_size"`
	RecordsWritten int            `json:"records_written"`
	ChunksFlushed  int            `json:"chunks_flushed"`
	FraudCount     int            `json:"fraud_count"`
	FraudRate      float64        `json:"fraud_rate"`
	RiskLevels     map[string]int `json:"risk_levels"`
	Seed           int64          `json:"seed"`
	ObjectKey      string         `json:"object_key,omitempty"` // ключ в объектном хранилище, если выгрузка включена
	StartedAt      time.Time      `json:"started_at"`
	FinishedAt     time.Time      `json:"finished_at"`
}

// RiskStatsResponse накопленные счетчики по всем прогонам
type RiskStatsResponse struct {
	RunID           string           `json:"run_id,omitempty"` // пусто для глобальных счетчиков
	RiskLevels      map[string]int64 `json:"risk_levels"`
	FraudByCategory map[string]int64 `json:"fraud_by_category,omitempty"`
}

// DatasetRun представляет запись о прогоне в БД
type DatasetRun struct {
	ID             int64      `db:"id" json:"-"`
	RunID          string     `db:"run_id" json:"run_id"`
	OutputPath     string     `db:"output_path" json:"output_path"`
	TotalRecords   int        `db:"total_records" json:"total_records"`
	ChunkSize      int        `db:"chunk_size" json:"chunk_size"`
	Seed           int64      `db:"seed" json:"seed"`
	Status         string     `db:"status" json:"status"`
	RecordsWritten int        `db:"records_written" json:"records_written"`
	ChunksFlushed  int        `db:"chunks_flushed" json:"chunks_flushed"`
	FraudCount     int        `db:"fraud_count" json:"fraud_count"`
	ErrorMessage   *string    `db:"error_message" json:"error_message,omitempty"`
	StartedAt      time.Time  `db:"started_at" json:"started_at"`
	FinishedAt     *time.Time `db:"finished_at" json:"finished_at,omitempty"`
}

// KafkaDatasetEvent представляет событие о ходе генерации в Kafka
type KafkaDatasetEvent struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	Timestamp time.Time        `json:"timestamp"`
	Data      KafkaDatasetData `json:"data"`
}

// KafkaDatasetData представляет данные события генерации
type KafkaDatasetData struct {
	RunID          string `json:"run_id"`
	OutputPath     string `json:"output_path"`
	ChunkIndex     int    `json:"chunk_index,omitempty"`
	ChunkRecords   int    `json:"chunk_records,omitempty"`
	RecordsWritten int    `json:"records_written"`
	TotalRecords   int    `json:"total_records"`
	FraudCount     int    `json:"fraud_count"`
	ObjectKey      string `json:"object_key,omitempty"`
	Error          string `json:"error,omitempty"`
}

// ChunkInfo описывает сброшенный на диск чанк
type ChunkInfo struct {
	RunID    string        `json:"run_id"`
	Index    int           `json:"chunk_index"` // с 1
	Records  int           `json:"chunk_records"`
	Written  int           `json:"records_written"`
	Total    int           `json:"total_records"`
	Frauds   int           `json:"fraud_count"`
	Duration time.Duration `json:"duration"`
}
