package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"eve-dashboard/internal/models"
)

// HTTPLoader загружает записи GET запросом
type HTTPLoader struct {
	url    string
	format string
	client *http.Client
}

// NewHTTPLoader создает HTTP загрузчик
func NewHTTPLoader(url, format string, timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{
		url:    url,
		format: format,
		client: &http.Client{Timeout: timeout},
	}
}

// Name возвращает тип источника
func (l *HTTPLoader) Name() string {
	return "http"
}

// Load выполняет GET и разбирает ответ
func (l *HTTPLoader) Load(ctx context.Context) ([]models.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return Decode(body, l.format)
}
