package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_PATH", "PORT", "LOG_MODE", "UPLOAD_DIR",
		"DB_DRIVER", "DB_DSN", "OPENAI_MODEL", "MAX_CHARS_PER_DOC", "CORS_ORIGINS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 3000 || cfg.DBDriver != "sqlite" || cfg.MaxCharsPerDoc != 60000 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.CORSOrigins) == 0 {
		t.Fatal("default CORS origins missing")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "port: 8080\nupload_dir: /tmp/docs\nmax_chars_per_doc: 1234\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9090 {
		t.Fatalf("env should win over file: port=%d", cfg.Port)
	}
	if cfg.UploadDir != "/tmp/docs" || cfg.MaxCharsPerDoc != 1234 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
}

func TestLoadRejectsBadDriver(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DB_DRIVER", "oracle")

	if _, err := Load(); err == nil {
		t.Fatal("unsupported driver accepted")
	}
}

func TestLoadRejectsNonPositiveBudget(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("MAX_CHARS_PER_DOC", "0")

	if _, err := Load(); err == nil {
		t.Fatal("zero char budget accepted")
	}
}

func TestLoadCORSOriginsCSV(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("CORS_ORIGINS", "https://app.exemplo.com, https://admin.exemplo.com ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"https://app.exemplo.com", "https://admin.exemplo.com"}
	if len(cfg.CORSOrigins) != len(want) {
		t.Fatalf("origins = %v, want %v", cfg.CORSOrigins, want)
	}
	for i := range want {
		if cfg.CORSOrigins[i] != want[i] {
			t.Fatalf("origins = %v, want %v", cfg.CORSOrigins, want)
		}
	}
}
