package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "PORT", "STORE_DRIVER", "STORE_TIMEOUT", "CURRENCY", "ALLOWED_ORIGINS", "FRONTEND_URL", "FRONTEND_URL_2", "MONGODB_URI", "MONGO_URI"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "3000" {
		t.Fatalf("expected default port 3000, got %q", cfg.Port)
	}
	if cfg.StoreDriver != "file" || cfg.StorePath != "data/database.json" {
		t.Fatalf("unexpected store defaults %q %q", cfg.StoreDriver, cfg.StorePath)
	}
	if cfg.StoreTimeout != 5*time.Second {
		t.Fatalf("expected 5s store timeout, got %v", cfg.StoreTimeout)
	}
	if cfg.Currency != "INR" {
		t.Fatalf("expected INR, got %q", cfg.Currency)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.IsProduction() {
		t.Fatalf("development must not be production")
	}
	if cfg.MongoURI != "mongodb://localhost:27017/goalledger" {
		t.Fatalf("unexpected mongo default %q", cfg.MongoURI)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENV", " Production ")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("STORE_TIMEOUT", "750ms")
	t.Setenv("CURRENCY", "usd")
	t.Setenv("ALLOWED_ORIGINS", "https://goals.example.com, https://www.goals.example.com,")
	t.Setenv("MONGODB_URI", "mongodb://db/primary")
	t.Setenv("MONGO_URI", "mongodb://db/alias")
	t.Setenv("ALLOWED_HOSTS", "api.goals.example.com")
	t.Setenv("ADMIN_EMAILS", "ops@example.com, owner@example.com")

	cfg := Load()
	if !cfg.IsProduction() {
		t.Fatalf("expected production, got %q", cfg.Environment)
	}
	if cfg.StoreDriver != "postgres" {
		t.Fatalf("expected lower-cased driver, got %q", cfg.StoreDriver)
	}
	if cfg.StoreTimeout != 750*time.Millisecond {
		t.Fatalf("expected 750ms, got %v", cfg.StoreTimeout)
	}
	if cfg.Currency != "USD" {
		t.Fatalf("expected USD, got %q", cfg.Currency)
	}
	if len(cfg.AdminEmails) != 2 || cfg.AdminEmails[1] != "owner@example.com" {
		t.Fatalf("unexpected admin emails %v", cfg.AdminEmails)
	}
	if len(cfg.AllowedHosts) != 1 || cfg.AllowedHosts[0] != "api.goals.example.com" {
		t.Fatalf("unexpected hosts %v", cfg.AllowedHosts)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.MongoURI != "mongodb://db/primary" {
		t.Fatalf("expected MONGODB_URI to win, got %q", cfg.MongoURI)
	}
}

func TestCloudinaryEnabled(t *testing.T) {
	cfg := &Config{CloudinaryName: "n", CloudinaryAPIKey: "k"}
	if cfg.CloudinaryEnabled() {
		t.Fatalf("expected disabled without secret")
	}
	cfg.CloudinaryAPISecret = "s"
	if !cfg.CloudinaryEnabled() {
		t.Fatalf("expected enabled with all credentials")
	}
}
