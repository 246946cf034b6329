package metrics

import (
	"errors"
	"time"

	"github.com/jhoicas/bentonit-ledger/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics cuenta y mide las operaciones del ledger por resultado.
// Implementa ledger.Recorder.
type LedgerMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewLedgerMetrics registra las métricas en reg. Con reg nil devuelve un recorder inerte.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "operations_total",
		Help:      "Operaciones del ledger por tipo y resultado.",
	}, []string{"operation", "result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ledger",
		Name:      "operation_duration_seconds",
		Help:      "Duración de las operaciones del ledger.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
	reg.MustRegister(operations, duration)
	return &LedgerMetrics{operations: operations, duration: duration}
}

// Observe registra una operación terminada.
func (m *LedgerMetrics) Observe(operation string, err error, elapsed time.Duration) {
	if m == nil || m.operations == nil {
		return
	}
	m.operations.WithLabelValues(normalizeLabel(operation), Result(err)).Inc()
	m.duration.WithLabelValues(normalizeLabel(operation)).Observe(elapsed.Seconds())
}

// Result etiqueta de resultado para un error del ledger.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, domain.ErrSameWarehouse):
		return "same_warehouse"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}

// JobMetrics métricas de los trabajos periódicos del worker.
type JobMetrics struct {
	duration *prometheus.HistogramVec
	runs     *prometheus.CounterVec
	orders   prometheus.Counter
}

// NewJobMetrics registra las métricas de trabajos en reg.
func NewJobMetrics(reg prometheus.Registerer) *JobMetrics {
	if reg == nil {
		return &JobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "job_duration_seconds",
		Help:    "Duración de los trabajos en segundos.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_runs_total",
		Help: "Ejecuciones de trabajos por resultado.",
	}, []string{"job", "result"})
	orders := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ledger_new_orders_notified_total",
		Help: "Pedidos nuevos notificados.",
	})
	reg.MustRegister(duration, runs, orders)
	return &JobMetrics{duration: duration, runs: runs, orders: orders}
}

// ObserveRun registra una ejecución del trabajo job.
func (m *JobMetrics) ObserveRun(job string, err error, elapsed time.Duration) {
	if m == nil || m.runs == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.runs.WithLabelValues(normalizeLabel(job), result).Inc()
	m.duration.WithLabelValues(normalizeLabel(job)).Observe(elapsed.Seconds())
}

// AddNotifiedOrders suma n pedidos notificados.
func (m *JobMetrics) AddNotifiedOrders(n int) {
	if m == nil || m.orders == nil || n <= 0 {
		return
	}
	m.orders.Add(float64(n))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
