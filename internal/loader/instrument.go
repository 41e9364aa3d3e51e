package loader

import (
	"context"
	"io"
	"time"

	"eve-dashboard/internal/metrics"
	"eve-dashboard/internal/models"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type instrumented struct {
	next Loader
}

// instrumentedPinger сохраняет Ping у источников, которые умеют проверять соединение
type instrumentedPinger struct {
	instrumented
	p pinger
}

// Instrument оборачивает загрузчик метриками Prometheus.
// Ping и Close исходного источника остаются доступны через обертку.
func Instrument(l Loader) Loader {
	base := instrumented{next: l}
	if p, ok := l.(pinger); ok {
		return instrumentedPinger{instrumented: base, p: p}
	}
	return base
}

func (i instrumented) Name() string {
	return i.next.Name()
}

func (i instrumented) Load(ctx context.Context) ([]models.Record, error) {
	start := time.Now()
	records, err := i.next.Load(ctx)
	metrics.ObserveLoad(i.next.Name(), len(records), time.Since(start), ErrorKind(err))
	return records, err
}

// Close закрывает исходный источник, если он держит ресурсы
func (i instrumented) Close() error {
	if c, ok := i.next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (i instrumentedPinger) Ping(ctx context.Context) error {
	return i.p.Ping(ctx)
}
