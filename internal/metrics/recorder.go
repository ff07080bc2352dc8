package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fraud-data-simulator/internal/models"
)

const namespace = "fraudsim"

// Recorder собирает метрики генерации. Реализует dataset.Observer.
// Использует собственный реестр, чтобы несколько экземпляров не конфликтовали при регистрации.
type Recorder struct {
	registry *prometheus.Registry

	recordsGenerated prometheus.Counter
	fraudRecords     prometheus.Counter
	chunksFlushed    prometheus.Counter
	chunkFlush       prometheus.Histogram
	riskScore        prometheus.Histogram
	runs             *prometheus.CounterVec
	activeRuns       prometheus.Gauge
	samples          prometheus.Counter
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		recordsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_generated_total",
			Help:      "Total number of transactions written to CSV.",
		}),
		fraudRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fraud_records_total",
			Help:      "Total number of transactions labelled as fraud.",
		}),
		chunksFlushed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_flushed_total",
			Help:      "Total number of chunks flushed to disk.",
		}),
		chunkFlush: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chunk_flush_seconds",
			Help:      "Time spent serializing and flushing one chunk.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		riskScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "risk_score",
			Help:      "Distribution of generated risk scores.",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished dataset runs by status.",
		}, []string{"status"}),
		activeRuns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_runs",
			Help:      "Dataset runs in progress.",
		}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_generated_total",
			Help:      "Single transactions generated through the API.",
		}),
	}

	r.registry.MustRegister(
		r.recordsGenerated, r.fraudRecords, r.chunksFlushed, r.chunkFlush,
		r.riskScore, r.runs, r.activeRuns, r.samples,
	)
	return r
}

// Registry возвращает реестр метрик
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler возвращает HTTP-обработчик для /metrics
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ObserveSample учитывает одиночную транзакцию, сгенерированную через API
func (r *Recorder) ObserveSample(tx *models.Transaction) {
	r.samples.Inc()
	r.riskScore.Observe(float64(tx.RiskScore))
}

func (r *Recorder) OnStart(ctx context.Context, run *models.DatasetSummary) error {
	r.activeRuns.Inc()
	return nil
}

func (r *Recorder) OnChunk(ctx context.Context, info models.ChunkInfo, chunk []models.Transaction) error {
	r.recordsGenerated.Add(float64(info.Records))
	r.fraudRecords.Add(float64(info.Frauds))
	r.chunksFlushed.Inc()
	r.chunkFlush.Observe(info.Duration.Seconds())
	for i := range chunk {
		r.riskScore.Observe(float64(chunk[i].RiskScore))
	}
	return nil
}

func (r *Recorder) OnFinish(ctx context.Context, run *models.DatasetSummary, runErr error) error {
	r.activeRuns.Dec()
	status := models.RunStatusCompleted
	if runErr != nil {
		status = models.RunStatusFailed
	}
	r.runs.WithLabelValues(status).Inc()
	return nil
}
