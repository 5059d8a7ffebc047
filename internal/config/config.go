package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Mail     MailConfig     `yaml:"mail"`
	LogLevel string         `yaml:"log_level"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	Mode            string        `yaml:"mode"` // gin mode: debug, release, test
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"` // postgres or sqlite
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type AuthConfig struct {
	JWTKey   string        `yaml:"jwt_key"`
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// MailConfig holds SMTP settings. Mail is disabled unless every field is set.
type MailConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.Port != "" && m.Username != "" && m.Password != "" && m.From != ""
}

// Load reads .env, then the optional YAML file at path (a missing file is not an
// error), then applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.Mode, "GIN_MODE")
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.DSN, "DATABASE_URL")
	setString(&c.Auth.JWTKey, "JWT_KEY")
	setString(&c.Mail.Host, "SMTP_HOST")
	setString(&c.Mail.Port, "SMTP_PORT")
	setString(&c.Mail.Username, "SMTP_USER")
	setString(&c.Mail.Password, "SMTP_PASS")
	setString(&c.Mail.From, "SMTP_FROM")
	setString(&c.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse TOKEN_TTL: %w", err)
		}
		c.Auth.TokenTTL = d
	}
	if v := os.Getenv("DB_MAX_OPEN_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
		}
		c.Database.MaxOpenConns = n
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) setDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "3000"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Database.DSN == "" {
		switch c.Database.Driver {
		case "sqlite":
			c.Database.DSN = "noticiario.db"
		default:
			// Fallback for local dev if not set
			c.Database.DSN = "host=localhost user=postgres password=postgres dbname=noticiario port=5432 sslmode=disable TimeZone=UTC"
		}
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 20
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 30 * time.Minute
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = time.Hour
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
