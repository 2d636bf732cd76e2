package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vmduarte/conciliador-backend/internal/pkg/envutil"
)

// Config is resolved in three layers: defaults, then an optional YAML file
// (CONFIG_PATH), then environment variables.
type Config struct {
	Port      int    `yaml:"port"`
	LogMode   string `yaml:"log_mode"`
	UploadDir string `yaml:"upload_dir"`

	DBDriver string `yaml:"db_driver"` // "sqlite" or "postgres"
	DBDSN    string `yaml:"db_dsn"`

	OracleModel       string  `yaml:"oracle_model"`
	OracleTemperature float64 `yaml:"oracle_temperature"`
	MaxCharsPerDoc    int     `yaml:"max_chars_per_doc"`

	CORSOrigins []string `yaml:"cors_origins"`
}

func defaults() Config {
	return Config{
		Port:              3000,
		LogMode:           "development",
		UploadDir:         "uploads",
		DBDriver:          "sqlite",
		DBDSN:             "conciliador.db",
		OracleModel:       "gpt-4.1-mini",
		OracleTemperature: 0.2,
		MaxCharsPerDoc:    60000,
		CORSOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		},
	}
}

func Load() (Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Port = envutil.Int("PORT", cfg.Port)
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode)
	cfg.UploadDir = envutil.String("UPLOAD_DIR", cfg.UploadDir)
	cfg.DBDriver = envutil.String("DB_DRIVER", cfg.DBDriver)
	cfg.DBDSN = envutil.String("DB_DSN", cfg.DBDSN)
	cfg.OracleModel = envutil.String("OPENAI_MODEL", cfg.OracleModel)
	cfg.MaxCharsPerDoc = envutil.Int("MAX_CHARS_PER_DOC", cfg.MaxCharsPerDoc)
	if origins := envutil.String("CORS_ORIGINS", ""); origins != "" {
		cfg.CORSOrigins = splitCSV(origins)
	}

	if cfg.MaxCharsPerDoc <= 0 {
		return cfg, fmt.Errorf("max_chars_per_doc must be positive, got %d", cfg.MaxCharsPerDoc)
	}
	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return cfg, fmt.Errorf("unsupported db_driver %q", cfg.DBDriver)
	}
	return cfg, nil
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
