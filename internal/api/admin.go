package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"
)

// adminOnly пропускает запрос только с валидным административным API-ключом.
func (s *HTTPServer) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.cfg.Admin.Enabled {
			writeError(w, http.StatusNotFound, "not found")
			return
		}

		header := strings.TrimSpace(strings.ToLower(s.cfg.Admin.HeaderAPIKey))
		if header == "" {
			header = "x-api-key"
		}

		apiKey := strings.TrimSpace(r.Header.Get(header))
		if apiKey == "" {
			writeError(w, http.StatusUnauthorized, "missing api key")
			return
		}

		for _, key := range s.cfg.Admin.APIKeys {
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1 {
				next(w, r)
				return
			}
		}
		writeError(w, http.StatusUnauthorized, "invalid api key")
	}
}

// handleExportBookings выгружает бронирования за период в Excel.
// Параметры start и end в формате YYYY-MM-DD; по умолчанию последние 30 дней.
func (s *HTTPServer) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -30)

	if raw := strings.TrimSpace(r.URL.Query().Get("start")); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start date; expected YYYY-MM-DD")
			return
		}
		start = parsed
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("end")); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end date; expected YYYY-MM-DD")
			return
		}
		end = parsed
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "end must not be before start")
		return
	}

	bookings, err := s.bookings.GetBookingsByDateRange(r.Context(), start, end)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	path, err := s.exporter.ExportBookings(bookings, start, end)
	if err != nil {
		s.logger.Error().Err(err).Msg("bookings export failed")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"file": path, "bookings": len(bookings)})
}

func (s *HTTPServer) handleExportUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.GetUsersForExport(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	path, err := s.exporter.ExportUsers(users)
	if err != nil {
		s.logger.Error().Err(err).Msg("users export failed")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"file": path, "users": len(users)})
}
