package logger

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type EventType string

const (
	EventDatasetStarted   EventType = "dataset_started"
	EventChunkFlushed     EventType = "chunk_flushed"
	EventDatasetCompleted EventType = "dataset_completed"
	EventDatasetFailed    EventType = "dataset_failed"
	EventSQLiteSaved      EventType = "sqlite_saved"
	EventKafkaSent        EventType = "kafka_sent"
	EventRedisSaved       EventType = "redis_saved"
	EventObjectUploaded   EventType = "object_uploaded"
	EventSampleGenerated  EventType = "sample_generated"
	EventDBUpdated        EventType = "db_updated"
)

// DefaultCapacity сколько последних событий хранит глобальный журнал
const DefaultCapacity = 1000

type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Service   string                 `json:"service"`
	Component string                 `json:"component"` // csv, kafka, redis, sqlite, minio
	RunID     string                 `json:"run_id,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// EventLogger кольцевой буфер последних событий. Старые события перезаписываются.
type EventLogger struct {
	mu     sync.RWMutex
	buf    []Event
	next   int
	filled bool
	seq    uint64
}

var globalLogger = NewEventLogger(DefaultCapacity)

func NewEventLogger(capacity int) *EventLogger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &EventLogger{buf: make([]Event, capacity)}
}

func LogEvent(eventType EventType, service string, component string, data map[string]interface{}) {
	globalLogger.LogEvent(eventType, service, component, data)
}

// LogEvent добавляет событие. run_id из data выносится в отдельное поле для фильтрации.
func (el *EventLogger) LogEvent(eventType EventType, service string, component string, data map[string]interface{}) {
	runID, _ := data["run_id"].(string)

	el.mu.Lock()
	defer el.mu.Unlock()

	el.seq++
	el.buf[el.next] = Event{
		ID:        fmt.Sprintf("%s-%d", time.Now().Format("20060102150405.000000"), el.seq),
		Type:      eventType,
		Service:   service,
		Component: component,
		RunID:     runID,
		Timestamp: time.Now(),
		Data:      data,
	}
	el.next = (el.next + 1) % len(el.buf)
	if el.next == 0 {
		el.filled = true
	}
}

func GetEvents(limit int) []Event {
	return globalLogger.GetEvents(limit)
}

func GetRunEvents(runID string, limit int) []Event {
	return globalLogger.GetRunEvents(runID, limit)
}

// GetEvents возвращает последние limit событий в порядке записи (limit <= 0 - все)
func (el *EventLogger) GetEvents(limit int) []Event {
	return el.collect(limit, func(Event) bool { return true })
}

// GetRunEvents возвращает последние события одного прогона
func (el *EventLogger) GetRunEvents(runID string, limit int) []Event {
	return el.collect(limit, func(e Event) bool { return e.RunID == runID })
}

func (el *EventLogger) collect(limit int, keep func(Event) bool) []Event {
	el.mu.RLock()
	defer el.mu.RUnlock()

	ordered := el.ordered()
	result := make([]Event, 0, len(ordered))
	for i := len(ordered) - 1; i >= 0 && (limit <= 0 || len(result) < limit); i-- {
		if keep(ordered[i]) {
			result = append(result, ordered[i])
		}
	}

	// Разворачиваем обратно в хронологический порядок
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result
}

// ordered возвращает события от старых к новым. Вызывать под блокировкой.
func (el *EventLogger) ordered() []Event {
	if !el.filled {
		return el.buf[:el.next]
	}
	out := make([]Event, 0, len(el.buf))
	out = append(out, el.buf[el.next:]...)
	return append(out, el.buf[:el.next]...)
}

func GetStats() map[string]interface{} {
	return globalLogger.GetStats()
}

func (el *EventLogger) GetStats() map[string]interface{} {
	el.mu.RLock()
	defer el.mu.RUnlock()

	events := el.ordered()
	componentStats := make(map[string]int)
	serviceStats := make(map[string]int)
	typeStats := make(map[string]int)
	runs := make(map[string]struct{})

	for _, event := range events {
		componentStats[event.Component]++
		serviceStats[event.Service]++
		typeStats[string(event.Type)]++
		if event.RunID != "" {
			runs[event.RunID] = struct{}{}
		}
	}

	return map[string]interface{}{
		"total_events": len(events),
		"total_logged": el.seq,
		"runs":         len(runs),
		"components":   componentStats,
		"services":     serviceStats,
		"event_types":  typeStats,
	}
}

func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	return json.Marshal(&struct {
		Timestamp string `json:"timestamp"`
		*Alias
	}{
		Timestamp: e.Timestamp.Format(time.RFC3339),
		Alias:     (*Alias)(&e),
	})
}
