package apperr

import (
	"errors"
	"fmt"
)

// Виды ошибок доменного слоя. Сервисы заворачивают их через %w,
// транспорт сопоставляет errors.Is -> HTTP статус.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidInterval = errors.New("invalid interval")
	ErrInvalidState    = errors.New("invalid state")
	ErrConflict        = errors.New("conflict")
	ErrInternal        = errors.New("internal error")
)

func NotFound(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

func Forbidden(format string, args ...any) error {
	return wrap(ErrForbidden, format, args...)
}

func InvalidArgument(format string, args ...any) error {
	return wrap(ErrInvalidArgument, format, args...)
}

func InvalidInterval(format string, args ...any) error {
	return wrap(ErrInvalidInterval, format, args...)
}

func InvalidState(format string, args ...any) error {
	return wrap(ErrInvalidState, format, args...)
}

func Conflict(format string, args ...any) error {
	return wrap(ErrConflict, format, args...)
}

// Internal скрывает детали исходной ошибки от вызывающего.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("something went wrong: %w", ErrInternal)
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}
