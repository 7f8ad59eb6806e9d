package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_HOST", "APP_PORT", "APP_ENV",
		"JOURNAL_API_URL", "GITHUB_USER",
		"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.APIBaseURL != "http://localhost:8787" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if !cfg.IsDev() {
		t.Error("IsDev should be true by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("APP_ENV", "testing")
	t.Setenv("JOURNAL_API_URL", "https://api.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if cfg.APIBaseURL != "https://api.example.com" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.IsDev() {
		t.Error("IsDev should be false for testing env")
	}
}

func TestLoadProductionRequiresAPIURL(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JOURNAL_API_URL", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when JOURNAL_API_URL is unset in production")
	}
}
