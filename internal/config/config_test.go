package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if cfg.Server.Addr != DefaultHTTPAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultHTTPAddr)
	}
	if cfg.Postgres.Port != DefaultPGPort {
		t.Errorf("Postgres.Port = %d, want %d", cfg.Postgres.Port, DefaultPGPort)
	}
	if cfg.Auth.JWTExpiresIn != DefaultJWTExpiresIn {
		t.Errorf("Auth.JWTExpiresIn = %q, want %q", cfg.Auth.JWTExpiresIn, DefaultJWTExpiresIn)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[log]
level = "debug"
format = "json"

[server]
addr = ":9090"

[auth]
jwt_secret = "s3cret"

[postgres]
host = "db.internal"
database = "desk"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log config not applied: %+v", cfg.Log)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Auth.JWTSecret != "s3cret" {
		t.Errorf("Auth.JWTSecret = %q", cfg.Auth.JWTSecret)
	}
	if cfg.Postgres.Host != "db.internal" || cfg.Postgres.Database != "desk" {
		t.Errorf("postgres config not applied: %+v", cfg.Postgres)
	}
	// Untouched sections keep defaults.
	if cfg.Postgres.SSLMode != DefaultPGSSLMode {
		t.Errorf("Postgres.SSLMode = %q, want default", cfg.Postgres.SSLMode)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
