package config

import (
	"os"
	"path/filepath"
	"testing"

	"shareit/internal/models"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
app:
  name: "shareit"
database:
  path: "test.db"
api:
  http:
    port: 9999
redis:
  enabled: true
  address: "localhost:6379"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Database.Path != "test.db" {
		t.Errorf("expected database path test.db, got %s", cfg.Database.Path)
	}
	if cfg.API.HTTP.Port != 9999 {
		t.Errorf("expected http port 9999, got %d", cfg.API.HTTP.Port)
	}
	if cfg.Redis.Address != "localhost:6379" {
		t.Errorf("expected redis address localhost:6379, got %s", cfg.Redis.Address)
	}
}

func TestLoadConfigEnvExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("SHAREIT_DB_PATH", "from_env.db")

	yamlContent := `
database:
  path: "${SHAREIT_DB_PATH}"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Database.Path != "from_env.db" {
		t.Errorf("expected expanded database path from_env.db, got %s", cfg.Database.Path)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid config",
			cfg:     Config{Database: DatabaseConfig{Path: "path"}},
			wantErr: false,
		},
		{
			name:    "missing database path",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name: "redis enabled without address",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				Redis:    RedisConfig{Enabled: true},
			},
			wantErr: true,
		},
		{
			name: "notify enabled without token",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				Notify:   NotifyConfig{TelegramEnabled: true},
			},
			wantErr: true,
		},
		{
			name: "sheets enabled without spreadsheet",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				Google:   GoogleConfig{Enabled: true, GoogleCredentialsFile: "creds.json"},
			},
			wantErr: true,
		},
		{
			name: "admin enabled without keys",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				API:      APIConfig{Admin: APIAdminConfig{Enabled: true}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.API.HTTP.Port != 8080 {
		t.Errorf("expected default http port 8080, got %d", cfg.API.HTTP.Port)
	}
	if cfg.API.Admin.HeaderAPIKey != "x-api-key" {
		t.Errorf("expected default api key header x-api-key, got %s", cfg.API.Admin.HeaderAPIKey)
	}
	if cfg.API.RateLimit.RPS != models.RateLimitRPS {
		t.Errorf("expected default rate limit rps %d, got %f", models.RateLimitRPS, cfg.API.RateLimit.RPS)
	}
	if cfg.Redis.SearchTTLSec != models.SearchCacheTTL {
		t.Errorf("expected default search ttl %d, got %d", models.SearchCacheTTL, cfg.Redis.SearchTTLSec)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
}
