package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `
server:
  port: 9100
database:
  url: "postgres://localhost/formiverse_test"
cors:
  origin: "http://localhost:3000"
env: "production"
email:
  smtp_host: "smtp.example.com"
  smtp_port: 587
  smtp_user: "mailer"
  smtp_password: "pw"
  from_email: "no-reply@example.com"
jwt:
  access_secret: "a-secret"
  refresh_secret: "r-secret"
  access_expiry: "15m"
  refresh_expiry: "7d"
  login_access_expiry: "2h"
files:
  root_dir: "/tmp/formiverse"
telegram:
  bot_token: ""
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	cfg, err := LoadConfigFile(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Database.DSN != "postgres://localhost/formiverse_test" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
	if !cfg.IsProduction() {
		t.Error("env=production not recognized")
	}
	if cfg.JWT.RefreshExpiry != "7d" {
		t.Errorf("refresh expiry = %q", cfg.JWT.RefreshExpiry)
	}
}

func TestLoadConfigFileDefaults(t *testing.T) {
	trimmed := strings.ReplaceAll(sampleYAML, "port: 9100", "port: 0")
	trimmed = strings.ReplaceAll(trimmed, `root_dir: "/tmp/formiverse"`, `root_dir: ""`)

	cfg, err := LoadConfigFile(writeConfig(t, trimmed))
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("default port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Files.RootDir != "./files" {
		t.Errorf("default files root = %q", cfg.Files.RootDir)
	}
}

func TestLoadConfigFileEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://override/db")
	t.Setenv("ACCESS_TOKEN_SECRET", "env-access")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "30m")

	cfg, err := LoadConfigFile(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Database.DSN != "postgres://override/db" {
		t.Errorf("dsn = %q, want env override", cfg.Database.DSN)
	}
	if cfg.JWT.AccessSecret != "env-access" {
		t.Errorf("access secret = %q, want env override", cfg.JWT.AccessSecret)
	}
	if cfg.JWT.AccessExpiry != "30m" {
		t.Errorf("access expiry = %q, want env override", cfg.JWT.AccessExpiry)
	}
}

func TestLoadConfigFileFailsFastOnMissingKeys(t *testing.T) {
	broken := strings.ReplaceAll(sampleYAML, `access_secret: "a-secret"`, `access_secret: ""`)
	broken = strings.ReplaceAll(broken, `url: "postgres://localhost/formiverse_test"`, `url: ""`)

	_, err := LoadConfigFile(writeConfig(t, broken))
	if err == nil {
		t.Fatal("config with missing secrets accepted")
	}
	for _, key := range []string{"database.url", "jwt.access_secret"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q does not name %s", err, key)
		}
	}
}

func TestLoadConfigFileMissingFile(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
