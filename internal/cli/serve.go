package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"eve-dashboard/internal/config"
	"eve-dashboard/internal/handlers"
	"eve-dashboard/internal/logger"
	"eve-dashboard/internal/metrics"
	"eve-dashboard/internal/render"
)

// Execute реализует goflags.Commander для ServeCommand
func (c *ServeCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals, os.Stdout)
	if err != nil {
		return err
	}
	c.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Log.Infof("Starting EVE dashboard %s on %s", c.version, hostname())
	logger.Log.Infof("Go version: %s", runtime.Version())

	// Однократная инициализация графики до первой отрисовки
	if err := render.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	l, err := openLoader(ctx, cfg.Source, 5)
	if err != nil {
		return err
	}
	if closer, ok := l.(io.Closer); ok {
		defer closer.Close()
	}
	logger.Log.Infof("Loading records from %s source", l.Name())

	handler := handlers.NewHandler(l, cfg.Server.EveFile)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handlers.NewRouter(handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go updateMetricsLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("Server listening on %s", cfg.Server.Addr)
		logger.Log.Infof("Endpoints:")
		logger.Log.Infof("  GET  /eve.json                    - EVE records file")
		logger.Log.Infof("  GET  /widgets/alerts-by-signature - Alerts by Signature widget")
		logger.Log.Infof("  GET  /api/signatures              - Chart series as JSON")
		logger.Log.Infof("  GET  /chart.png                   - Chart rendered as PNG")
		logger.Log.Infof("  GET  /health                      - Health check")
		logger.Log.Infof("  GET  /prometheus                  - Prometheus metrics")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("Server shutdown error: %v", err)
	}

	logger.Log.Info("Server stopped")
	return nil
}

// applyOverrides применяет флаги команды; источник по умолчанию следует за адресом сервера
func (c *ServeCommand) applyOverrides(cfg *config.Config) {
	if c.Addr != "" {
		cfg.Server.Addr = c.Addr
	}
	cfg.ResolveSourceURL()
}

// updateMetricsLoop периодически обновляет метрики процесса
func updateMetricsLoop(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.ActiveGoroutines.Set(float64(runtime.NumGoroutine()))
		}
	}
}
