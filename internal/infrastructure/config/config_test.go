package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() with missing file should fall back to defaults, got %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("default port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Security.JWT.AccessTokenTTL != 60 {
		t.Errorf("default TTL = %d, want 60", cfg.Security.JWT.AccessTokenTTL)
	}
	if !cfg.UsingDevSecret() {
		t.Error("default config should report the dev secret in use")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
security:
  jwt:
    secret: "file-secret-that-is-long-enough-0123456789"
    access_token_ttl: 2
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Security.JWT.AccessTokenTTL != 2 {
		t.Errorf("TTL = %d, want 2", cfg.Security.JWT.AccessTokenTTL)
	}
	if cfg.UsingDevSecret() {
		t.Error("file secret should replace the dev secret")
	}

	// Unset values keep their defaults.
	if cfg.Database.Path != "./data/kantorku.db" {
		t.Errorf("database path = %q, want default", cfg.Database.Path)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("KANTORKU_JWT_SECRET", "env-secret-that-is-long-enough-0123456789")
	t.Setenv("KANTORKU_JWT_TTL_MINUTES", "15")
	t.Setenv("KANTORKU_DATABASE_PATH", "/tmp/env.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Security.JWT.Secret != "env-secret-that-is-long-enough-0123456789" {
		t.Error("env secret should override the default")
	}
	if cfg.Security.JWT.AccessTokenTTL != 15 {
		t.Errorf("TTL = %d, want 15", cfg.Security.JWT.AccessTokenTTL)
	}
	if cfg.Database.Path != "/tmp/env.db" {
		t.Errorf("database path = %q, want /tmp/env.db", cfg.Database.Path)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"short secret", func(c *Config) { c.Security.JWT.Secret = "short" }, "at least 32 characters"},
		{"zero TTL", func(c *Config) { c.Security.JWT.AccessTokenTTL = 0 }, "access_token_ttl"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"bcrypt cost too low", func(c *Config) { c.Security.Password.BcryptCost = 2 }, "bcrypt_cost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	if err := defaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}
