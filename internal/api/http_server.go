package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shareit/internal/config"
	"shareit/internal/export"
	"shareit/internal/metrics"
	"shareit/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Заголовок, которым клиент представляется сервису.
const userIDHeader = "X-Sharer-User-Id"

// HTTPServer — внешний REST API сервиса шеринга.
type HTTPServer struct {
	cfg      config.APIConfig
	users    *service.UserService
	items    *service.ItemService
	bookings *service.BookingService
	requests *service.RequestService
	exporter *export.Exporter
	server   *http.Server
	limiter  *rateLimiter
	logger   zerolog.Logger
}

func NewHTTPServer(
	cfg config.APIConfig,
	users *service.UserService,
	items *service.ItemService,
	bookings *service.BookingService,
	requests *service.RequestService,
	exporter *export.Exporter,
	logger *zerolog.Logger,
) *HTTPServer {
	base := zerolog.Nop()
	if logger != nil {
		base = logger.With().Str("component", "http").Logger()
	}

	srv := &HTTPServer{
		cfg:      cfg,
		users:    users,
		items:    items,
		bookings: bookings,
		requests: requests,
		exporter: exporter,
		limiter:  newRateLimiter(cfg.RateLimit),
		logger:   base,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", srv.handleCreateUser)
	mux.HandleFunc("GET /users", srv.handleListUsers)
	mux.HandleFunc("GET /users/{id}", srv.handleGetUser)
	mux.HandleFunc("PATCH /users/{id}", srv.handleUpdateUser)
	mux.HandleFunc("DELETE /users/{id}", srv.handleDeleteUser)

	mux.HandleFunc("POST /items", srv.handleCreateItem)
	mux.HandleFunc("GET /items", srv.handleListItems)
	mux.HandleFunc("GET /items/search", srv.handleSearchItems)
	mux.HandleFunc("GET /items/{id}", srv.handleGetItem)
	mux.HandleFunc("PATCH /items/{id}", srv.handleUpdateItem)
	mux.HandleFunc("POST /items/{id}/comment", srv.handleAddComment)

	mux.HandleFunc("POST /bookings", srv.handleCreateBooking)
	mux.HandleFunc("GET /bookings", srv.handleListBookings)
	mux.HandleFunc("GET /bookings/owner", srv.handleListOwnerBookings)
	mux.HandleFunc("GET /bookings/{id}", srv.handleGetBooking)
	mux.HandleFunc("PATCH /bookings/{id}", srv.handleApproveBooking)

	mux.HandleFunc("POST /requests", srv.handleCreateRequest)
	mux.HandleFunc("GET /requests", srv.handleOwnRequests)
	mux.HandleFunc("GET /requests/all", srv.handleOtherRequests)
	mux.HandleFunc("GET /requests/{id}", srv.handleGetRequest)

	mux.HandleFunc("GET /admin/export/bookings", srv.adminOnly(srv.handleExportBookings))
	mux.HandleFunc("GET /admin/export/users", srv.adminOnly(srv.handleExportUsers))

	handler := srv.loggingMiddleware(srv.limiter.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	return srv
}

// Handler отдает корневой обработчик; используется в тестах.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get("X-Request-Id"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		dur := time.Since(start)

		endpoint := r.Pattern
		if endpoint == "" {
			endpoint = r.URL.Path
		}
		metrics.IncHTTP(endpoint, strconv.Itoa(recorder.status))

		s.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", dur).
			Msg("http request")
	})
}

// userID извлекает идентификатор пользователя из заголовка X-Sharer-User-Id.
func userID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.Header.Get(userIDHeader))
	if raw == "" {
		return 0, fmt.Errorf("%s header is required", userIDHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s header", userIDHeader)
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// queryInt читает числовой query-параметр; при отсутствии возвращает def.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return v, nil
}

func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return "unknown"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
