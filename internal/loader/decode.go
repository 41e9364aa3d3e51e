package loader

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"eve-dashboard/internal/config"
	"eve-dashboard/internal/models"
)

// maxLineSize максимальная длина строки EVE в формате lines
const maxLineSize = 16 * 1024 * 1024

// Decode разбирает полезную нагрузку в заданном формате
func Decode(data []byte, format string) ([]models.Record, error) {
	switch format {
	case config.FormatArray, "":
		return decodeArray(data)
	case config.FormatLines:
		return decodeLines(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unknown payload format %q", format)
	}
}

// decodeArray разбирает JSON массив записей.
// Элементы, не являющиеся объектом подходящей формы, пропускаются.
func decodeArray(data []byte) ([]models.Record, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON payload: %w", err)
	}

	trimmed := bytes.TrimSpace(raw)
	if trimmed[0] != '[' {
		return nil, &ShapeError{Found: jsonKind(trimmed[0])}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("invalid JSON payload: %w", err)
	}

	records := make([]models.Record, 0, len(items))
	for _, item := range items {
		if r, ok := decodeRecord(item); ok {
			records = append(records, r)
		}
	}
	return records, nil
}

// decodeLines разбирает newline-delimited JSON (родной формат eve.json)
func decodeLines(r io.Reader) ([]models.Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	records := make([]models.Record, 0)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if rec, ok := decodeRecord(line); ok {
			records = append(records, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return records, nil
}

// decodeRecord разбирает одну запись; ok=false, если это не JSON объект
func decodeRecord(data []byte) (models.Record, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return models.Record{}, false
	}
	var r models.Record
	if err := json.Unmarshal(trimmed, &r); err != nil {
		return models.Record{}, false
	}
	return r, true
}

func jsonKind(first byte) string {
	switch first {
	case '{':
		return "object"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
