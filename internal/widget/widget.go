// Package widget реализует состояние виджета "Alerts by Signature":
// Loading -> Error | Ready, одна загрузка на активацию
package widget

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"eve-dashboard/internal/analytics"
	"eve-dashboard/internal/loader"
	"eve-dashboard/internal/logger"
	"eve-dashboard/internal/metrics"
	"eve-dashboard/internal/models"
)

// State состояние виджета
type State int

const (
	// Loading начальное состояние, загрузка еще не завершена
	Loading State = iota
	// Error загрузка завершилась ошибкой
	Error
	// Ready серия для графика готова
	Ready
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Error:
		return "error"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Snapshot неизменяемая копия состояния виджета
type Snapshot struct {
	State   State
	Series  models.ChartSeries
	Message string
}

// Widget владеет своим состоянием; экземпляры не разделяют данные.
// Экземпляр одноразовый: новая загрузка требует нового виджета.
type Widget struct {
	mu        sync.Mutex
	loader    loader.Loader
	state     State
	series    models.ChartSeries
	message   string
	activated bool
	disposed  bool
	cancel    context.CancelFunc
}

// New создает виджет в состоянии Loading
func New(l loader.Loader) *Widget {
	return &Widget{
		loader: l,
		state:  Loading,
	}
}

// Activate выполняет единственную загрузку и переводит виджет в Ready или Error.
// Повторный вызов ничего не загружает и возвращает текущее состояние.
// Если виджет деактивирован или ctx отменен до завершения загрузки,
// результат отбрасывается и состояние не меняется.
func (w *Widget) Activate(ctx context.Context) Snapshot {
	w.mu.Lock()
	if w.activated || w.disposed {
		snap := w.snapshotLocked()
		w.mu.Unlock()
		return snap
	}
	w.activated = true
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.mu.Unlock()
	defer cancel()

	records, err := w.loader.Load(ctx)

	var series models.ChartSeries
	if err == nil {
		series = analytics.Aggregate(records)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.disposed || ctx.Err() != nil {
		logger.Log.WithField("source", w.loader.Name()).Debug("Discarding load result of inactive widget")
		return w.snapshotLocked()
	}

	if err != nil {
		w.fail(err)
	} else {
		w.state = Ready
		w.series = series
		metrics.UpdateSeriesMetrics(series.Len(), series.Total())
		metrics.WidgetStates.WithLabelValues(Ready.String()).Inc()
		logger.Log.WithFields(logrus.Fields{
			"source":     w.loader.Name(),
			"records":    len(records),
			"signatures": series.Len(),
		}).Debug("Widget ready")
	}

	return w.snapshotLocked()
}

// fail переводит виджет в Error; вызывается под блокировкой
func (w *Widget) fail(err error) {
	w.state = Error
	w.message = err.Error()
	metrics.WidgetStates.WithLabelValues(Error.String()).Inc()

	fields := logrus.Fields{
		"source": w.loader.Name(),
		"kind":   loader.ErrorKind(err),
	}
	var fetchErr *loader.FetchError
	if errors.As(err, &fetchErr) {
		fields["detail"] = fetchErr.Detail()
	}
	logger.Log.WithFields(fields).WithError(err).Error("Error fetching data")
}

// Deactivate отменяет незавершенную загрузку и освобождает данные
func (w *Widget) Deactivate() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.disposed = true
	if w.cancel != nil {
		w.cancel()
	}
	w.state = Loading
	w.series = models.ChartSeries{}
	w.message = ""
}

// Snapshot возвращает текущее состояние
func (w *Widget) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Widget) snapshotLocked() Snapshot {
	return Snapshot{
		State:   w.state,
		Series:  w.series,
		Message: w.message,
	}
}
