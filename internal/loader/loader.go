// Package loader загружает EVE-записи из внешнего источника:
// HTTP ресурса /eve.json, файла на диске или redis-вывода Suricata
package loader

import (
	"context"
	"fmt"

	"eve-dashboard/internal/config"
	"eve-dashboard/internal/models"
)

// EvePath стандартный путь ресурса с записями
const EvePath = config.EvePath

// Loader выполняет одну загрузку записей
type Loader interface {
	Load(ctx context.Context) ([]models.Record, error)
	// Name возвращает тип источника (http, file, redis)
	Name() string
}

// New создает загрузчик по конфигурации источника.
// Для redis проверяется подключение.
func New(cfg config.SourceConfig) (Loader, error) {
	switch cfg.Kind {
	case config.SourceHTTP:
		return NewHTTPLoader(cfg.URL, cfg.Format, cfg.Timeout), nil
	case config.SourceFile:
		return NewFileLoader(cfg.File, cfg.Format), nil
	case config.SourceRedis:
		return NewRedisSource(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Key, cfg.Redis.Limit)
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}

// Func адаптирует функцию к интерфейсу Loader
type Func func(ctx context.Context) ([]models.Record, error)

// Load вызывает f
func (f Func) Load(ctx context.Context) ([]models.Record, error) {
	return f(ctx)
}

// Name возвращает "func"
func (f Func) Name() string {
	return "func"
}
