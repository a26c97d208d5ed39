package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/congestion")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("IMAGE_STORAGE_PATH", "")
	t.Setenv("SEED_WORKERS", "")
	t.Setenv("LOG_DIR", "")
	t.Setenv("LOG_RETENTION_DAYS", "")

	cfg := Load()
	want := Config{
		DatabaseDriver:   "pgx",
		DatabaseURL:      "postgres://localhost/congestion",
		ImageStoragePath: "storage/images",
		SeedWorkers:      4,
		LogDir:           "storage/logs",
		LogRetentionDays: 7,
	}
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", " file:test.db ")
	t.Setenv("DATABASE_DRIVER", "sqlite3")
	t.Setenv("IMAGE_STORAGE_PATH", "/var/images")
	t.Setenv("SEED_WORKERS", "500")
	t.Setenv("LOG_DIR", "/var/log/congestion")
	t.Setenv("LOG_RETENTION_DAYS", "0")

	cfg := Load()
	if cfg.DatabaseURL != "file:test.db" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.DatabaseDriver != "sqlite3" {
		t.Errorf("DatabaseDriver = %q", cfg.DatabaseDriver)
	}
	if cfg.SeedWorkers != 64 {
		t.Errorf("SeedWorkers = %d, want 64", cfg.SeedWorkers)
	}
	if cfg.LogRetentionDays != 1 {
		t.Errorf("LogRetentionDays = %d, want 1", cfg.LogRetentionDays)
	}
	if cfg.ImageStoragePath != "/var/images" || cfg.LogDir != "/var/log/congestion" {
		t.Errorf("paths = %q, %q", cfg.ImageStoragePath, cfg.LogDir)
	}
}

func TestEnvOrIntIgnoresGarbage(t *testing.T) {
	t.Setenv("SEED_WORKERS", "many")
	if got := envOrInt("SEED_WORKERS", 4); got != 4 {
		t.Errorf("envOrInt() = %d, want 4", got)
	}
}

func TestLoadPanicsWithoutDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	defer func() {
		if recover() == nil {
			t.Error("expected panic for missing DATABASE_URL")
		}
	}()
	Load()
}
