package loader

import (
	"context"
	"fmt"
	"os"

	"eve-dashboard/internal/models"
)

// FileLoader читает записи из локального файла
type FileLoader struct {
	path   string
	format string
}

// NewFileLoader создает файловый загрузчик
func NewFileLoader(path, format string) *FileLoader {
	return &FileLoader{path: path, format: format}
}

// Name возвращает тип источника
func (l *FileLoader) Name() string {
	return "file"
}

// Load читает и разбирает файл
func (l *FileLoader) Load(ctx context.Context) ([]models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read eve file: %w", err)
	}

	return Decode(data, l.format)
}
