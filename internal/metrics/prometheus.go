// Package metrics реализует экспорт метрик в Prometheus
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus метрики
var (
	// RequestsTotal общее количество запросов
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evedash_requests_total",
			Help: "Total number of requests processed",
		},
		[]string{"endpoint", "method", "status"},
	)

	// RequestDuration длительность запросов
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "evedash_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"endpoint", "method"},
	)

	// LoadsTotal количество загрузок записей
	LoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evedash_loads_total",
			Help: "Total number of record loads by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	// LoadErrors ошибки загрузки по типу
	LoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evedash_load_errors_total",
			Help: "Total number of failed loads by error kind",
		},
		[]string{"source", "kind"},
	)

	// LoadLatency время загрузки
	LoadLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "evedash_load_latency_seconds",
			Help:    "Record load latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"source"},
	)

	// RecordsLoaded количество загруженных записей
	RecordsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evedash_records_loaded_total",
			Help: "Total number of records decoded from the source",
		},
		[]string{"source"},
	)

	// RecordsCounted количество записей с сигнатурой
	RecordsCounted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "evedash_records_counted_total",
			Help: "Total number of records that contributed to a signature count",
		},
	)

	// DistinctSignatures количество различных сигнатур в последней серии
	DistinctSignatures = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "evedash_distinct_signatures",
			Help: "Number of distinct signatures in the last computed series",
		},
	)

	// WidgetStates переходы виджета в конечные состояния
	WidgetStates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evedash_widget_states_total",
			Help: "Widget transitions into a terminal state",
		},
		[]string{"state"},
	)

	// ActiveGoroutines количество активных горутин
	ActiveGoroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "evedash_active_goroutines",
			Help: "Number of active goroutines",
		},
	)
)

// ObserveLoad обновляет метрики загрузки; kind пуст при успехе
func ObserveLoad(source string, records int, elapsed time.Duration, kind string) {
	LoadLatency.WithLabelValues(source).Observe(elapsed.Seconds())
	if kind != "" {
		LoadsTotal.WithLabelValues(source, "error").Inc()
		LoadErrors.WithLabelValues(source, kind).Inc()
		return
	}
	LoadsTotal.WithLabelValues(source, "ok").Inc()
	RecordsLoaded.WithLabelValues(source).Add(float64(records))
}

// UpdateSeriesMetrics обновляет метрики агрегации
func UpdateSeriesMetrics(distinct, counted int) {
	DistinctSignatures.Set(float64(distinct))
	RecordsCounted.Add(float64(counted))
}
