// internal/config/config.go
//
// Runtime configuration for the trainer.
// Sources, later ones winning:
//   1. Built-in defaults (Default).
//   2. An optional YAML file (--config or TRAINER_CONFIG).
//   3. Environment variables, usually loaded from .env by godotenv.
//
// Environment variables:
//   PORT, LOG_LEVEL, CLIENT_ORIGIN, DEFAULT_LANG,
//   SESSION_SECRET, SESSION_TTL, COOKIE_NAME,
//   STORE_DRIVER (memory|sqlite), STORE_DSN

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// DevSecret signs session tokens when nothing else is configured.
const DevSecret = "dev_secret_change_me"

type Config struct {
	Port         string  `yaml:"port"`
	LogLevel     string  `yaml:"log_level"`
	ClientOrigin string  `yaml:"client_origin"`
	DefaultLang  string  `yaml:"default_lang"`
	Session      Session `yaml:"session"`
	Store        Store   `yaml:"store"`
}

type Session struct {
	Secret     string        `yaml:"secret"`
	TTL        time.Duration `yaml:"ttl"`
	CookieName string        `yaml:"cookie_name"`
}

type Store struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:         "5175",
		LogLevel:     "info",
		ClientOrigin: "http://localhost:5173",
		DefaultLang:  "en",
		Session: Session{
			Secret:     DevSecret,
			TTL:        6 * time.Hour,
			CookieName: "trainer_session",
		},
		Store: Store{
			Driver: "memory",
			DSN:    "./data/trainer.db",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is non-empty) and the process environment.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.UnmarshalStrict(b, &c); err != nil {
			return c, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := c.applyEnv(os.Getenv); err != nil {
		return c, err
	}
	return c, c.Validate()
}

// applyEnv overrides fields from non-empty variables.
func (c *Config) applyEnv(getenv func(string) string) error {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Port, "PORT")
	set(&c.LogLevel, "LOG_LEVEL")
	set(&c.ClientOrigin, "CLIENT_ORIGIN")
	set(&c.DefaultLang, "DEFAULT_LANG")
	set(&c.Session.Secret, "SESSION_SECRET")
	set(&c.Session.CookieName, "COOKIE_NAME")
	set(&c.Store.Driver, "STORE_DRIVER")
	set(&c.Store.DSN, "STORE_DSN")
	if v := getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_TTL: %w", err)
		}
		c.Session.TTL = d
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case "memory":
	case "sqlite":
		if c.Store.DSN == "" {
			return errors.New("store.dsn is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if c.Session.Secret == "" {
		return errors.New("session.secret must not be empty")
	}
	if c.Session.CookieName == "" {
		return errors.New("session.cookie_name must not be empty")
	}
	return nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string { return ":" + c.Port }
