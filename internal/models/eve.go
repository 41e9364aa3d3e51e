// Package models содержит структуры данных EVE-записей и агрегатов для дашборда
package models

import (
	"bytes"
	"encoding/json"
)

// Record представляет одну запись EVE-лога Suricata.
// Используется только поле alert.signature, остальные поля игнорируются.
type Record struct {
	Alert *Alert `json:"alert,omitempty"`
}

// Alert содержит данные срабатывания правила
type Alert struct {
	Signature OptionalString `json:"signature"`
}

// Signature возвращает сигнатуру записи, если она присутствует и не пуста
func (r Record) Signature() (string, bool) {
	if r.Alert == nil || !r.Alert.Signature.Valid || r.Alert.Signature.Value == "" {
		return "", false
	}
	return r.Alert.Signature.Value, true
}

// OptionalString хранит строковое поле JSON вместе с признаком его наличия.
// Значения другого типа (число, bool, объект, null) считаются отсутствующими.
type OptionalString struct {
	Value string
	Valid bool
}

// Some создает присутствующее значение
func Some(v string) OptionalString {
	return OptionalString{Value: v, Valid: true}
}

// UnmarshalJSON реализует json.Unmarshaler
func (s *OptionalString) UnmarshalJSON(data []byte) error {
	s.Value, s.Valid = "", false
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	s.Value, s.Valid = v, true
	return nil
}

// MarshalJSON реализует json.Marshaler
func (s OptionalString) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// NewAlertRecord создает запись с заданной сигнатурой (удобно для тестов и CLI)
func NewAlertRecord(signature string) Record {
	return Record{Alert: &Alert{Signature: Some(signature)}}
}
