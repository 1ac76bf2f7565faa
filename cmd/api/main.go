package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"shareit/internal/api"
	"shareit/internal/cache"
	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/export"
	"shareit/internal/google"
	"shareit/internal/logging"
	"shareit/internal/metrics"
	"shareit/internal/models"
	"shareit/internal/notify"
	"shareit/internal/service"
	"shareit/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	if err := prepareDirectories(cfg, &logger); err != nil {
		return err
	}

	db, err := initDatabase(cfg, &logger)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := initRedis(ctx, cfg, &logger)
	defer (func() { _ = cache.Close(redisClient) })()
	searchCache := initSearchCache(cfg, redisClient, &logger)

	sheetsService := initGoogleSheets(ctx, cfg, &logger)

	// Воркер синхронизации таблицы бронирований
	var syncWorker domain.SyncWorker
	if sheetsService != nil {
		retryPolicy := worker.RetryPolicy{MaxRetries: 5, InitialDelay: 2 * time.Second, MaxDelay: time.Minute, BackoffFactor: 2}
		sheetsWorker := worker.NewSheetsWorker(db, sheetsService, redisClient, retryPolicy, nil)
		go sheetsWorker.Start(ctx)
		syncWorker = sheetsWorker
	}

	eventBus := events.NewEventBus()
	initNotifier(cfg, eventBus, &logger)

	userService := service.NewUserService(db, &logger)
	itemService := service.NewItemService(db, searchCache, eventBus, nil, &logger)
	bookingService := service.NewBookingService(db, eventBus, syncWorker, nil, &logger)
	requestService := service.NewRequestService(db, nil, &logger)
	exporter := export.NewExporter(cfg.Exports.Path, &logger)

	httpServer := api.NewHTTPServer(cfg.API, userService, itemService, bookingService, requestService, exporter, &logger)

	startMetrics(ctx, cfg, &logger)

	return startServer(ctx, httpServer, cfg, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

func prepareDirectories(cfg *config.Config, logger *zerolog.Logger) error {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.Error().Err(err).Msg("Ошибка создания директории для базы данных")
		return err
	}
	if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
		logger.Error().Err(err).Msg("Ошибка создания директории для экспорта")
		return err
	}
	return nil
}

func initDatabase(cfg *config.Config, logger *zerolog.Logger) (*database.DB, error) {
	db, err := database.New(cfg.Database.Path)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return nil, err
	}

	if err := seedDatabase(db, logger); err != nil {
		logger.Warn().Err(err).Msg("seed failed, continuing with existing data")
	}
	return db, nil
}

// seedUser описывает стартовые данные из configs/seed.yaml.
type seedUser struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Items []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Available   bool   `yaml:"available"`
	} `yaml:"items"`
}

// seedDatabase загружает стартовых пользователей и вещи, если файл задан.
// Уже существующие пользователи (по email) пропускаются.
func seedDatabase(db *database.DB, logger *zerolog.Logger) error {
	seedPath := os.Getenv("SEED_PATH")
	if seedPath == "" {
		seedPath = "configs/seed.yaml"
	}

	data, err := os.ReadFile(seedPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var seed struct {
		Users []seedUser `yaml:"users"`
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	ctx := context.Background()
	for _, su := range seed.Users {
		user := &models.User{Name: su.Name, Email: su.Email}
		err := db.CreateUser(ctx, user)
		if errors.Is(err, database.ErrDuplicateEmail) {
			continue
		}
		if err != nil {
			return err
		}

		for _, si := range su.Items {
			item := &models.Item{
				OwnerID:     user.ID,
				Name:        si.Name,
				Description: si.Description,
				Available:   si.Available,
			}
			if err := db.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		logger.Info().Str("email", su.Email).Int("items", len(su.Items)).Msg("seeded user")
	}
	return nil
}

func initRedis(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		return nil
	}

	redisClient := cache.NewRedisClient(cfg.Redis)
	if err := cache.Ping(ctx, redisClient); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		_ = redisClient.Close()
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

// initSearchCache собирает кэш поиска: redis с деградацией в память либо
// чисто in-memory вариант.
func initSearchCache(cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) domain.SearchCache {
	ttl := time.Duration(cfg.Redis.SearchTTLSec) * time.Second
	memoryCache := cache.NewMemorySearchCache(ttl)

	if redisClient == nil {
		return memoryCache
	}

	redisCache := cache.NewRedisSearchCache(redisClient, ttl)
	return cache.NewFailoverSearchCache(redisCache, memoryCache, logger)
}

func initGoogleSheets(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *google.SheetsService {
	if !cfg.Google.Enabled {
		return nil
	}

	sheetsService, err := google.NewSheetsService(cfg.Google.GoogleCredentialsFile, cfg.Google.BookingSpreadSheetID)
	if err != nil {
		logger.Warn().Err(err).Msg("google sheets init failed, continuing without sheets")
		return nil
	}

	if err := sheetsService.TestConnection(ctx); err != nil {
		logger.Warn().Err(err).Msg("google sheets connection test failed, continuing without sheets")
		return nil
	}

	logger.Info().Msg("google sheets connected")
	return sheetsService
}

func initNotifier(cfg *config.Config, bus *events.EventBus, logger *zerolog.Logger) {
	if !cfg.Notify.TelegramEnabled {
		return
	}

	notifier, err := notify.NewTelegramNotifier(cfg.Notify, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("telegram notifier init failed, continuing without notifications")
		return
	}
	notifier.Register(bus)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startServer(ctx context.Context, httpServer *api.HTTPServer, cfg *config.Config, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	logger.Info().Int("http_port", cfg.API.HTTP.Port).Msg("API server started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpServer.Shutdown(shutdownCtx)

	logger.Info().Msg("API server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
