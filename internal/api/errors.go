package api

import (
	"errors"
	"net/http"

	"shareit/internal/apperr"
)

// writeServiceError переводит доменные ошибки в HTTP-статусы.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrInvalidArgument),
		errors.Is(err, apperr.ErrInvalidInterval),
		errors.Is(err, apperr.ErrInvalidState):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error().Err(err).Msg("unhandled service error")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
