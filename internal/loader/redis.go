package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"eve-dashboard/internal/models"
)

// RedisSource читает записи из списка, который заполняет redis-вывод eve-log
// (filetype: redis, mode: list). Suricata добавляет записи через LPUSH,
// поэтому голова списка - самая новая запись.
type RedisSource struct {
	client *redis.Client
	key    string
	limit  int64
}

// NewRedisSource создает новое подключение к Redis
func NewRedisSource(addr, password string, db int, key string, limit int64) (*RedisSource, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 1,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Проверяем подключение
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSource{
		client: client,
		key:    key,
		limit:  limit,
	}, nil
}

// Name возвращает тип источника
func (r *RedisSource) Name() string {
	return "redis"
}

// Load возвращает последние limit записей в порядке поступления
func (r *RedisSource) Load(ctx context.Context) ([]models.Record, error) {
	data, err := r.client.LRange(ctx, r.key, 0, r.limit-1).Result()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &FetchError{Err: err}
	}

	records := make([]models.Record, 0, len(data))
	for i := len(data) - 1; i >= 0; i-- {
		if rec, ok := decodeRecord([]byte(data[i])); ok {
			records = append(records, rec)
		}
	}

	return records, nil
}

// Ping проверяет соединение с Redis
func (r *RedisSource) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close закрывает соединение
func (r *RedisSource) Close() error {
	return r.client.Close()
}
