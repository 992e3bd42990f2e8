package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultDSN = "host=localhost user=postgres password=password dbname=jobtracker port=5432 sslmode=disable"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	LLM      LLMConfig      `yaml:"llm"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // postgres, sqlite
	DSN    string `yaml:"dsn"`
	Debug  bool   `yaml:"debug"`
}

// StorageConfig points at an S3-compatible bucket holding uploaded documents.
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
	PublicURL string `yaml:"public_url"`
}

// Configured is false when uploads must be refused.
func (s StorageConfig) Configured() bool {
	return s.Endpoint != "" && s.AccessKey != "" && s.SecretKey != ""
}

type LLMConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// Load reads .env, then the YAML file at path (both optional), then applies
// environment overrides and defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}

	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.DSN, "DATABASE_URL")
	setBool(&c.Database.Debug, "DB_DEBUG")

	setString(&c.Storage.Endpoint, "STORAGE_ENDPOINT")
	setString(&c.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&c.Storage.SecretKey, "STORAGE_SECRET_KEY")
	setString(&c.Storage.Bucket, "STORAGE_BUCKET")
	setBool(&c.Storage.UseSSL, "STORAGE_USE_SSL")
	setString(&c.Storage.PublicURL, "STORAGE_PUBLIC_URL")

	setString(&c.LLM.APIKey, "GEMINI_API_KEY")
	setString(&c.LLM.Model, "GEMINI_MODEL")

	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Database.DSN == "" && c.Database.Driver == "postgres" {
		c.Database.DSN = defaultDSN
	}
	if c.Database.DSN == "" && c.Database.Driver == "sqlite" {
		c.Database.DSN = "jobtracker.db"
	}
	if c.Storage.Bucket == "" {
		c.Storage.Bucket = "documents"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-2.5-flash"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(v)
		*dst = err == nil && b
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
