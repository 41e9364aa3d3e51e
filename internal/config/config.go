// Package config загружает конфигурацию сервиса из YAML с переопределением через переменные окружения
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Типы источников EVE-записей
const (
	SourceHTTP  = "http"
	SourceFile  = "file"
	SourceRedis = "redis"
)

// EvePath стандартный путь ресурса с записями
const EvePath = "/eve.json"

// Форматы полезной нагрузки
const (
	FormatArray = "array"
	FormatLines = "lines"
)

// Config содержит конфигурацию сервиса
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Source  SourceConfig  `yaml:"source"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig - параметры HTTP сервера
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	EveFile      string        `yaml:"eve_file"` // файл, отдаваемый по GET /eve.json
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// SourceConfig - откуда загружаются записи для виджета
type SourceConfig struct {
	Kind    string        `yaml:"kind"`
	Format  string        `yaml:"format"`
	URL     string        `yaml:"url"`
	File    string        `yaml:"file"`
	Timeout time.Duration `yaml:"timeout"`
	Redis   RedisConfig   `yaml:"redis"`
}

// RedisConfig - параметры redis-вывода eve-log (режим list)
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
	Limit    int64  `yaml:"limit"`
}

// LoggingConfig - параметры логирования
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			EveFile:      "eve.json",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Source: SourceConfig{
			Kind:    SourceHTTP,
			Format:  FormatArray,
			URL:     "", // по умолчанию /eve.json этого же сервера, см. ResolveSourceURL
			File:    "eve.json",
			Timeout: 10 * time.Second,
			Redis: RedisConfig{
				Addr:  "localhost:6379",
				Key:   "suricata",
				Limit: 10000,
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load читает YAML файл и накладывает его на значения по умолчанию.
// Пустой путь означает конфигурацию по умолчанию.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// ApplyEnv переопределяет значения из переменных окружения
func (c *Config) ApplyEnv() {
	c.Server.Addr = getEnv("SERVER_ADDR", c.Server.Addr)
	c.Server.EveFile = getEnv("EVE_FILE", c.Server.EveFile)
	c.Source.Kind = getEnv("EVE_SOURCE", c.Source.Kind)
	c.Source.Format = getEnv("EVE_FORMAT", c.Source.Format)
	c.Source.URL = getEnv("EVE_URL", c.Source.URL)
	c.Source.File = getEnv("EVE_SOURCE_FILE", c.Source.File)
	c.Source.Redis.Addr = getEnv("REDIS_ADDR", c.Source.Redis.Addr)
	c.Source.Redis.Password = getEnv("REDIS_PASSWORD", c.Source.Redis.Password)
	c.Source.Redis.DB = getEnvInt("REDIS_DB", c.Source.Redis.DB)
	c.Source.Redis.Key = getEnv("REDIS_KEY", c.Source.Redis.Key)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
}

// ResolveSourceURL направляет незаданный source.url на /eve.json самого сервиса.
// Вызывается после всех переопределений server.addr.
func (c *Config) ResolveSourceURL() {
	if c.Source.URL != "" {
		return
	}
	c.Source.URL = SelfURL(c.Server.Addr)
}

// SelfURL строит адрес ресурса EvePath для сервера, слушающего addr
func SelfURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr + EvePath
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + EvePath
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceHTTP:
		if c.Source.URL == "" {
			return fmt.Errorf("source.url is required for %q source", c.Source.Kind)
		}
	case SourceFile:
		if c.Source.File == "" {
			return fmt.Errorf("source.file is required for %q source", c.Source.Kind)
		}
	case SourceRedis:
		if c.Source.Redis.Key == "" {
			return fmt.Errorf("source.redis.key is required for %q source", c.Source.Kind)
		}
		if c.Source.Redis.Limit <= 0 {
			return fmt.Errorf("source.redis.limit must be positive, got %d", c.Source.Redis.Limit)
		}
	default:
		return fmt.Errorf("unknown source kind %q (use http, file or redis)", c.Source.Kind)
	}

	switch c.Source.Format {
	case FormatArray, FormatLines:
	default:
		return fmt.Errorf("unknown source format %q (use array or lines)", c.Source.Format)
	}

	return nil
}

// getEnv получает переменную окружения с значением по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает целочисленную переменную окружения
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
