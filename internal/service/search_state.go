package service

import (
	"strings"

	"shareit/internal/apperr"
	"shareit/internal/models"
)

// ParseSearchState нормализует фильтр состояния бронирований.
// Пустая строка означает ALL, неизвестное значение — ошибка аргумента.
func ParseSearchState(raw string) (string, error) {
	state := strings.ToUpper(strings.TrimSpace(raw))
	if state == "" {
		return models.SearchStateAll, nil
	}

	switch state {
	case models.SearchStateAll,
		models.SearchStateCurrent,
		models.SearchStatePast,
		models.SearchStateFuture,
		models.SearchStateWaiting,
		models.SearchStateRejected:
		return state, nil
	default:
		return "", apperr.InvalidArgument("Unknown state: %s", raw)
	}
}
