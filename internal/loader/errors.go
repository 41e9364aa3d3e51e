package loader

import (
	"context"
	"errors"
	"fmt"
)

const (
	// MsgFetch сообщение об ошибке транспорта или неуспешном ответе
	MsgFetch = "Network response was not ok"
	// MsgShape сообщение о полезной нагрузке, не являющейся массивом
	MsgShape = "Fetched data is not an array"
)

// FetchError - ошибка транспорта или ответ с неуспешным статусом
type FetchError struct {
	StatusCode int   // 0, если ответ не был получен
	Err        error // причина на уровне транспорта, может быть nil
}

func (e *FetchError) Error() string {
	return MsgFetch
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Detail возвращает подробности для журнала
func (e *FetchError) Detail() string {
	switch {
	case e.Err != nil:
		return e.Err.Error()
	case e.StatusCode != 0:
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	default:
		return "no response"
	}
}

// ShapeError - JSON разобран, но не является массивом
type ShapeError struct {
	Found string // тип найденного JSON значения: object, string, number...
}

func (e *ShapeError) Error() string {
	return MsgShape
}

// ErrorKind классифицирует ошибку загрузки для метрик и журнала
func ErrorKind(err error) string {
	var fetchErr *FetchError
	var shapeErr *ShapeError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.As(err, &fetchErr):
		return "fetch"
	case errors.As(err, &shapeErr):
		return "shape"
	default:
		return "decode"
	}
}
