package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type JWTConfig struct {
	AccessSecret      string `yaml:"access_secret"`
	RefreshSecret     string `yaml:"refresh_secret"`
	AccessExpiry      string `yaml:"access_expiry"`       // compact form, e.g. "15m"
	RefreshExpiry     string `yaml:"refresh_expiry"`      // e.g. "7d"
	LoginAccessExpiry string `yaml:"login_access_expiry"` // e.g. "2h"
}

type TelegramConfig struct {
	BotToken   string `yaml:"bot_token"`
	WebhookURL string `yaml:"webhook_url"`
}

type FilesConfig struct {
	RootDir string `yaml:"root_dir"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	CORS struct {
		Origin string `yaml:"origin"`
	} `yaml:"cors"`
	Env   string `yaml:"env"` // "production" tightens cookies
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	JWT      JWTConfig      `yaml:"jwt"`
	Files    FilesConfig    `yaml:"files"`
	Telegram TelegramConfig `yaml:"telegram"`
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// env overrides so secrets can stay out of the YAML file
var envOverrides = map[string]func(*Config, string){
	"DATABASE_URL":         func(c *Config, v string) { c.Database.DSN = v },
	"ACCESS_TOKEN_SECRET":  func(c *Config, v string) { c.JWT.AccessSecret = v },
	"REFRESH_TOKEN_SECRET": func(c *Config, v string) { c.JWT.RefreshSecret = v },
	"ACCESS_TOKEN_EXPIRY":  func(c *Config, v string) { c.JWT.AccessExpiry = v },
	"REFRESH_TOKEN_EXPIRY": func(c *Config, v string) { c.JWT.RefreshExpiry = v },
	"CORS_ORIGIN":          func(c *Config, v string) { c.CORS.Origin = v },
	"SMTP_USER":            func(c *Config, v string) { c.Email.SMTPUser = v },
	"SMTP_PASSWORD":        func(c *Config, v string) { c.Email.SMTPPassword = v },
	"SENDER_EMAIL":         func(c *Config, v string) { c.Email.FromEmail = v },
	"TELEGRAM_BOT_TOKEN":   func(c *Config, v string) { c.Telegram.BotToken = v },
}

func LoadConfig() *Config {
	cfg, err := LoadConfigFile("config/config.yaml")
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	for key, apply := range envOverrides {
		if v := os.Getenv(key); v != "" {
			apply(&cfg, v)
		}
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Files.RootDir == "" {
		cfg.Files.RootDir = "./files"
	}
	if cfg.CORS.Origin == "" {
		cfg.CORS.Origin = "http://localhost:5173"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate fails fast on missing required keys instead of surfacing them as
// runtime errors on the first request that needs them.
func (c *Config) validate() error {
	var missing []string
	if c.Database.DSN == "" {
		missing = append(missing, "database.url")
	}
	if c.JWT.AccessSecret == "" {
		missing = append(missing, "jwt.access_secret")
	}
	if c.JWT.RefreshSecret == "" {
		missing = append(missing, "jwt.refresh_secret")
	}
	if c.Email.SMTPHost == "" {
		missing = append(missing, "email.smtp_host")
	}
	if c.Email.FromEmail == "" {
		missing = append(missing, "email.from_email")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required keys: %v", missing)
	}
	return nil
}
