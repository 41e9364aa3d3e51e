// Package handlers содержит HTTP обработчики дашборда
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"eve-dashboard/internal/loader"
	"eve-dashboard/internal/logger"
	"eve-dashboard/internal/metrics"
	"eve-dashboard/internal/models"
	"eve-dashboard/internal/render"
	"eve-dashboard/internal/widget"
)

const (
	// ChartWidth ширина PNG графика по умолчанию
	ChartWidth = 800
	// ChartHeight высота PNG графика по умолчанию
	ChartHeight = 800
	// maxChartSize ограничение размеров PNG из параметров запроса
	maxChartSize = 2000
)

// Pinger реализуют источники, которые умеют проверять соединение
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler содержит зависимости для HTTP обработчиков
type Handler struct {
	loader    loader.Loader
	eveFile   string
	startTime time.Time
}

// NewHandler создает новый обработчик.
// eveFile - файл, отдаваемый по GET /eve.json.
func NewHandler(l loader.Loader, eveFile string) *Handler {
	return &Handler{
		loader:    l,
		eveFile:   eveFile,
		startTime: time.Now(),
	}
}

// activate создает виджет на время запроса и выполняет его единственную загрузку
func (h *Handler) activate(r *http.Request) widget.Snapshot {
	w := widget.New(h.loader)
	defer w.Deactivate()
	return w.Activate(r.Context())
}

// EveFileHandler обрабатывает GET /eve.json - отдает файл с записями
func (h *Handler) EveFileHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(metrics.RequestDuration.WithLabelValues(loader.EvePath, r.Method))
	defer timer.ObserveDuration()

	fi, err := os.Stat(h.eveFile)
	if err == nil && fi.IsDir() {
		err = fmt.Errorf("%s is a directory", h.eveFile)
	}
	if err != nil {
		logger.Log.WithError(err).Warn("EVE file is not available")
		h.respondError(w, "EVE file not found", http.StatusNotFound)
		metrics.RequestsTotal.WithLabelValues(loader.EvePath, r.Method, "404").Inc()
		return
	}

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	rec.Header().Set("Content-Type", "application/json")
	http.ServeFile(rec, r, h.eveFile)
	metrics.RequestsTotal.WithLabelValues(loader.EvePath, r.Method, strconv.Itoa(rec.status)).Inc()
}

// WidgetHandler обрабатывает GET /widgets/alerts-by-signature - HTML виджет
func (h *Handler) WidgetHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(metrics.RequestDuration.WithLabelValues("/widgets/alerts-by-signature", r.Method))
	defer timer.ObserveDuration()

	snap := h.activate(r)

	var buf bytes.Buffer
	if err := render.HTML(&buf, snap); err != nil {
		logger.Log.WithError(err).Error("Failed to render widget")
		h.respondError(w, "Failed to render widget", http.StatusInternalServerError)
		metrics.RequestsTotal.WithLabelValues("/widgets/alerts-by-signature", r.Method, "500").Inc()
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
	metrics.RequestsTotal.WithLabelValues("/widgets/alerts-by-signature", r.Method, "200").Inc()
}

// SignaturesHandler обрабатывает GET /api/signatures - серия графика в JSON
func (h *Handler) SignaturesHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(metrics.RequestDuration.WithLabelValues("/api/signatures", r.Method))
	defer timer.ObserveDuration()

	snap := h.activate(r)

	response := models.SignaturesResponse{
		State:  snap.State.String(),
		Labels: snap.Series.Labels,
		Counts: snap.Series.Counts,
		Colors: snap.Series.Colors,
		Total:  snap.Series.Total(),
		Error:  snap.Message,
	}
	if response.Labels == nil {
		response.Labels, response.Counts, response.Colors = []string{}, []int{}, []string{}
	}

	status := http.StatusOK
	if snap.State != widget.Ready {
		status = http.StatusBadGateway
	}

	metrics.RequestsTotal.WithLabelValues("/api/signatures", r.Method, strconv.Itoa(status)).Inc()
	h.respondJSON(w, response, status)
}

// ChartHandler обрабатывает GET /chart.png - серверная отрисовка графика
func (h *Handler) ChartHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(metrics.RequestDuration.WithLabelValues("/chart.png", r.Method))
	defer timer.ObserveDuration()

	width := parseSize(r.URL.Query().Get("width"), ChartWidth)
	height := parseSize(r.URL.Query().Get("height"), ChartHeight)

	snap := h.activate(r)
	if snap.State != widget.Ready {
		h.respondError(w, snap.Message, http.StatusBadGateway)
		metrics.RequestsTotal.WithLabelValues("/chart.png", r.Method, "502").Inc()
		return
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, snap.Series, width, height); err != nil {
		if errors.Is(err, render.ErrNoData) {
			w.WriteHeader(http.StatusNoContent)
			metrics.RequestsTotal.WithLabelValues("/chart.png", r.Method, "204").Inc()
			return
		}
		logger.Log.WithError(err).Error("Failed to render chart")
		h.respondError(w, "Failed to render chart: "+err.Error(), http.StatusInternalServerError)
		metrics.RequestsTotal.WithLabelValues("/chart.png", r.Method, "500").Inc()
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
	metrics.RequestsTotal.WithLabelValues("/chart.png", r.Method, "200").Inc()
}

// HealthHandler обрабатывает GET /health - проверка здоровья
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	metrics.ActiveGoroutines.Set(float64(runtime.NumGoroutine()))

	sourceStatus := h.loader.Name()
	if p, ok := h.loader.(Pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			sourceStatus += ": disconnected"
		} else {
			sourceStatus += ": connected"
		}
	}

	status := models.HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Source:    sourceStatus,
		Uptime:    time.Since(h.startTime).String(),
	}

	h.respondJSON(w, status, http.StatusOK)
}

// IndexHandler перенаправляет на виджет
func (h *Handler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/widgets/alerts-by-signature", http.StatusFound)
}

func parseSize(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 || n > maxChartSize {
		return defaultValue
	}
	return n
}

// respondJSON отправляет JSON ответ
func (h *Handler) respondJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithError(err).Warn("Failed to write JSON response")
	}
}

// respondError отправляет ошибку в JSON формате
func (h *Handler) respondError(w http.ResponseWriter, message string, status int) {
	h.respondJSON(w, map[string]string{"error": message}, status)
}
