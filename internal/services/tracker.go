package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"fraud-data-simulator/internal/models"
)

// runTracker хранит состояние прогонов в памяти процесса.
// Работает без SQLite и Redis, поэтому статус прогона доступен всегда.
type runTracker struct {
	mu        sync.RWMutex
	runs      map[string]*models.DatasetRun
	summaries map[string]*models.DatasetSummary
	order     []string
	active    map[string]string // путь выгрузки -> run_id активного прогона
}

func newRunTracker() *runTracker {
	return &runTracker{
		runs:      make(map[string]*models.DatasetRun),
		summaries: make(map[string]*models.DatasetSummary),
		active:    make(map[string]string),
	}
}

// begin регистрирует прогон и занимает его файл выгрузки.
// Два активных прогона не могут писать в один путь.
func (t *runTracker) begin(run *models.DatasetRun) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	path := filepath.Clean(run.OutputPath)
	if owner, busy := t.active[path]; busy {
		return fmt.Errorf("%w: %s is being written by %s", ErrOutputInUse, path, owner)
	}
	t.active[path] = run.RunID

	if _, ok := t.runs[run.RunID]; !ok {
		t.order = append(t.order, run.RunID)
	}
	cp := *run
	cp.Status = models.RunStatusRunning
	t.runs[run.RunID] = &cp
	return nil
}

// release освобождает путь прогона. Вызывается под t.mu
func (t *runTracker) release(runID string) {
	run, ok := t.runs[runID]
	if !ok {
		return
	}
	path := filepath.Clean(run.OutputPath)
	if t.active[path] == runID {
		delete(t.active, path)
	}
}

// fail помечает прогон как failed, если он еще не завершен
func (t *runTracker) fail(runID string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.release(runID)
	run, ok := t.runs[runID]
	if !ok || run.Status != models.RunStatusRunning {
		return
	}
	now := time.Now()
	msg := err.Error()
	run.Status = models.RunStatusFailed
	run.ErrorMessage = &msg
	run.FinishedAt = &now
}

func (t *runTracker) get(runID string) *models.DatasetRun {
	t.mu.RLock()
	defer t.mu.RUnlock()

	run, ok := t.runs[runID]
	if !ok {
		return nil
	}
	cp := *run
	return &cp
}

func (t *runTracker) summary(runID string) *models.DatasetSummary {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, ok := t.summaries[runID]
	if !ok {
		return nil
	}
	cp := *s
	return &cp
}

// list возвращает прогоны, новые первыми
func (t *runTracker) list(limit int) []*models.DatasetRun {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if limit <= 0 || limit > len(t.order) {
		limit = len(t.order)
	}
	result := make([]*models.DatasetRun, 0, limit)
	for i := len(t.order) - 1; i >= 0 && len(result) < limit; i-- {
		cp := *t.runs[t.order[i]]
		result = append(result, &cp)
	}
	return result
}

func (t *runTracker) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Активные прогоны остаются, чтобы их статус не пропал до завершения
	order := t.order[:0]
	for _, id := range t.order {
		if t.runs[id].Status == models.RunStatusRunning {
			order = append(order, id)
			continue
		}
		delete(t.runs, id)
		delete(t.summaries, id)
	}
	t.order = order
}

func (t *runTracker) OnStart(ctx context.Context, run *models.DatasetSummary) error {
	return nil
}

func (t *runTracker) OnChunk(ctx context.Context, info models.ChunkInfo, chunk []models.Transaction) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if run, ok := t.runs[info.RunID]; ok {
		run.RecordsWritten = info.Written
		run.ChunksFlushed = info.Index
		run.FraudCount += info.Frauds
	}
	return nil
}

func (t *runTracker) OnFinish(ctx context.Context, summary *models.DatasetSummary, runErr error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.release(summary.RunID)
	run, ok := t.runs[summary.RunID]
	if !ok {
		return nil
	}
	finishedAt := summary.FinishedAt
	run.RecordsWritten = summary.RecordsWritten
	run.ChunksFlushed = summary.ChunksFlushed
	run.FraudCount = summary.FraudCount
	run.FinishedAt = &finishedAt
	if runErr != nil {
		msg := runErr.Error()
		run.Status = models.RunStatusFailed
		run.ErrorMessage = &msg
	} else {
		run.Status = models.RunStatusCompleted
	}

	cp := *summary
	t.summaries[summary.RunID] = &cp
	return nil
}
