package config

import (
	"strings"
	"testing"
)

func TestEnsureDSNKeepsExplicitDSN(t *testing.T) {
	cfg := DBConfig{DSN: "postgres://acro:pw@localhost:5432/acronyms?sslmode=disable"}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensureDSN: %v", err)
	}
	if !strings.Contains(cfg.DSN, "acronyms") {
		t.Fatalf("expected DSN untouched, got %s", cfg.DSN)
	}
}

func TestEnsureDSNBuildsFromParts(t *testing.T) {
	cfg := DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "acro",
		Password: "secret",
		Name:     "acronyms",
		SSLMode:  "disable",
	}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensureDSN: %v", err)
	}
	for _, fragment := range []string{"postgres://", "acro:secret@", "localhost:5432", "acronyms", "sslmode=disable"} {
		if !strings.Contains(cfg.DSN, fragment) {
			t.Fatalf("expected DSN to contain %q, got %s", fragment, cfg.DSN)
		}
	}
}

func TestEnsureDSNRejectsMissingParts(t *testing.T) {
	cfg := DBConfig{Host: "localhost"}
	if err := cfg.ensureDSN(); err == nil {
		t.Fatal("expected error when user and name are missing")
	}
}

func TestAppConfigEnvPredicates(t *testing.T) {
	dev := AppConfig{Env: "DEV"}
	if !dev.IsDev() || dev.IsProd() {
		t.Fatal("expected case-insensitive dev detection")
	}

	prod := AppConfig{Env: "prod"}
	if !prod.IsProd() || prod.IsDev() {
		t.Fatal("expected prod detection")
	}
}
