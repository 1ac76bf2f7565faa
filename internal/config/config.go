package config

import (
	"errors"
	"fmt"
	"os"

	"shareit/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	API        APIConfig        `yaml:"api"`
	Notify     NotifyConfig     `yaml:"notify"`
	Exports    ExportConfig     `yaml:"exports"`
	Google     GoogleConfig     `yaml:"google"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type APIConfig struct {
	HTTP      APIHTTPConfig      `yaml:"http"`
	Admin     APIAdminConfig     `yaml:"admin"`
	RateLimit APIRateLimitConfig `yaml:"rate_limit"`
}

type APIHTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
}

// APIAdminConfig защищает служебные ручки (выгрузки) ключом.
type APIAdminConfig struct {
	Enabled      bool     `yaml:"enabled"`
	HeaderAPIKey string   `yaml:"header_api_key"`
	APIKeys      []string `yaml:"api_keys"`
}

type APIRateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Address      string `yaml:"address"`
	Password     string `yaml:"password"`
	DB           int    `yaml:"db"`
	PoolSize     int    `yaml:"pool_size"`
	SearchTTLSec int    `yaml:"search_ttl_sec"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

// NotifyConfig — телеграм-уведомления владельцам вещей.
type NotifyConfig struct {
	TelegramEnabled bool   `yaml:"telegram_enabled"`
	BotToken        string `yaml:"bot_token"`
	ChatID          int64  `yaml:"chat_id"`
	Debug           bool   `yaml:"debug"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

type GoogleConfig struct {
	Enabled               bool   `yaml:"enabled"`
	GoogleCredentialsFile string `yaml:"credentials_file"`
	BookingSpreadSheetID  string `yaml:"bookings_spreadsheet_id"`
}

func Load(configPath string) (*Config, error) {
	// Загружаем .env файл если существует
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Предварительная замена переменных окружения в YAML
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}
	if c.Redis.Enabled && c.Redis.Address == "" {
		return errors.New("redis address is required when redis is enabled")
	}
	if c.Notify.TelegramEnabled && c.Notify.BotToken == "" {
		return errors.New("telegram bot token is required when notifications are enabled")
	}
	if c.Google.Enabled {
		if c.Google.GoogleCredentialsFile == "" {
			return errors.New("google credentials file is required when sheets sync is enabled")
		}
		if c.Google.BookingSpreadSheetID == "" {
			return errors.New("bookings spreadsheet id is required when sheets sync is enabled")
		}
	}
	if c.API.Admin.Enabled && len(c.API.Admin.APIKeys) == 0 {
		return errors.New("at least one api key is required when admin endpoints are enabled")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "shareit"
	}
	if c.API.HTTP.Port == 0 {
		c.API.HTTP.Port = 8080
	}
	if c.API.HTTP.ReadTimeoutSec == 0 {
		c.API.HTTP.ReadTimeoutSec = 15
	}
	if c.API.HTTP.WriteTimeoutSec == 0 {
		c.API.HTTP.WriteTimeoutSec = 30
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.API.Admin.HeaderAPIKey == "" {
		c.API.Admin.HeaderAPIKey = "x-api-key"
	}
	if c.API.RateLimit.RPS == 0 {
		c.API.RateLimit.RPS = models.RateLimitRPS
	}
	if c.API.RateLimit.Burst == 0 {
		c.API.RateLimit.Burst = models.RateLimitBurst
	}
	if c.Redis.SearchTTLSec == 0 {
		c.Redis.SearchTTLSec = models.SearchCacheTTL
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
