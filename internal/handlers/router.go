package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"eve-dashboard/internal/loader"
	"eve-dashboard/internal/logger"
)

// NewRouter настраивает маршруты сервиса
func NewRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/", h.IndexHandler).Methods("GET")
	router.HandleFunc(loader.EvePath, h.EveFileHandler).Methods("GET", "HEAD")
	router.HandleFunc("/widgets/alerts-by-signature", h.WidgetHandler).Methods("GET")
	router.HandleFunc("/api/signatures", h.SignaturesHandler).Methods("GET")
	router.HandleFunc("/chart.png", h.ChartHandler).Methods("GET")
	router.HandleFunc("/health", h.HealthHandler).Methods("GET")

	// Prometheus метрики
	router.Handle("/prometheus", promhttp.Handler())

	// pprof для профилирования
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	router.Use(loggingMiddleware)

	return router
}

// statusRecorder запоминает код ответа для журнала
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware логирует HTTP запросы
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}
