package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MEDIA_ACCESS_KEY_ID", "media-key")
	t.Setenv("MEDIA_SECRET_ACCESS_KEY", "media-secret")
	t.Setenv("MEDIA_PUBLIC_BASE_URL", "https://media.example.com")
	t.Setenv("AUTH_JWT_SECRET", "jwt-secret")
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_PORT", "9090")
	t.Setenv("POSTGRES_DB", "portal")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.API.Port != 9090 {
		t.Fatalf("expected api port 9090, got %d", cfg.API.Port)
	}
	if cfg.Database.Name != "portal" {
		t.Fatalf("expected database name portal, got %q", cfg.Database.Name)
	}
	if cfg.Database.Host != "localhost" {
		t.Fatalf("expected default database host, got %q", cfg.Database.Host)
	}
	if cfg.Auth.TokenTTL() != 24*time.Hour {
		t.Fatalf("expected default 24h token ttl, got %s", cfg.Auth.TokenTTL())
	}
	if cfg.Redis.Addr() != "localhost:6379" {
		t.Fatalf("expected default redis addr, got %q", cfg.Redis.Addr())
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AUTH_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing jwt secret")
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, Name: "portal", User: "u", Password: "p", SSLMode: "disable"}
	want := "host=db port=5432 user=u password=p dbname=portal sslmode=disable"
	if got := d.DSN(); got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}
