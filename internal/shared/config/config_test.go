package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "OBJECT_STORE", "LLM_MODEL", "CONTACT_EMAIL", "UPLOAD_RETENTION", "ENV"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected default port 5000, got %q", cfg.Port)
	}
	if cfg.ObjectStoreType != "local" {
		t.Fatalf("expected local store, got %q", cfg.ObjectStoreType)
	}
	if cfg.LLMModel != "gpt-4" {
		t.Fatalf("expected gpt-4, got %q", cfg.LLMModel)
	}
	if cfg.ContactEmail != defaultContactEmail {
		t.Fatalf("expected fallback contact email, got %q", cfg.ContactEmail)
	}
	if cfg.UploadRetention != 24*time.Hour {
		t.Fatalf("expected 24h retention, got %s", cfg.UploadRetention)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected dev env, got %q", cfg.Env)
	}
}

func TestGetEnvDurationAcceptsSecondsAndDurations(t *testing.T) {
	t.Setenv("TEST_DURATION", "90")
	if got := getEnvDuration("TEST_DURATION", time.Minute); got != 90*time.Second {
		t.Fatalf("expected 90s, got %s", got)
	}

	t.Setenv("TEST_DURATION", "2h")
	if got := getEnvDuration("TEST_DURATION", time.Minute); got != 2*time.Hour {
		t.Fatalf("expected 2h, got %s", got)
	}

	t.Setenv("TEST_DURATION", "soon")
	if got := getEnvDuration("TEST_DURATION", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback 1m, got %s", got)
	}
}

func TestNormalizeStoreType(t *testing.T) {
	if got := normalizeStoreType(" S3 "); got != "s3" {
		t.Fatalf("expected s3, got %q", got)
	}
	if got := normalizeStoreType("gcs"); got != "local" {
		t.Fatalf("expected local fallback, got %q", got)
	}
}

func TestLoadDatabasePoolSettings(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_CONN_MAX_LIFETIME", "20m")
	t.Setenv("DB_MAX_IDLE_CONNS", "")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "")
	t.Setenv("DB_PING_TIMEOUT", "")

	cfg := Load()

	if cfg.DBMaxOpenConns != 7 || cfg.DBConnMaxLifetime != 20*time.Minute {
		t.Fatalf("unexpected pool settings %d %s", cfg.DBMaxOpenConns, cfg.DBConnMaxLifetime)
	}
	if cfg.DBMaxIdleConns != 0 || cfg.DBPingTimeout != 0 {
		t.Fatalf("expected unset pool values to stay zero")
	}
}
