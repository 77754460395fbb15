package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	BackendFile     = "file"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Storage  StorageConfig
	Mongo    MongoConfig
	Postgres PostgresConfig
}

type ServerConfig struct {
	Port        string   `env:"PORT" envDefault:"3000"`
	GinMode     string   `env:"GIN_MODE" envDefault:"debug"`
	StaticDir   string   `env:"STATIC_DIR" envDefault:"frontend"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

type LogConfig struct {
	Env   string `env:"APP_ENV" envDefault:"development"`
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

type StorageConfig struct {
	Backend  string `env:"STORAGE_BACKEND" envDefault:"file"`
	DataFile string `env:"DATA_FILE" envDefault:"data/feedbacks.json"`
}

// MongoConfig.URI has no default and is not checked here: a missing URI only
// becomes an error when the first connection is attempted.
type MongoConfig struct {
	URI        string `env:"MONGODB_URI"`
	Database   string `env:"MONGODB_DATABASE" envDefault:"feedback-flow"`
	Collection string `env:"MONGODB_COLLECTION" envDefault:"feedbacks"`
}

type PostgresConfig struct {
	URL string `env:"POSTGRES_URL"`
}

// Load reads .env (if present) into the process environment and parses it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		log.Info().Msg("No .env file found, using system environment variables")
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.DataFile == "" {
			return fmt.Errorf("DATA_FILE must not be empty for the %q backend", BackendFile)
		}
	case BackendMongo:
	case BackendPostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("POSTGRES_URL is required for the %q backend", BackendPostgres)
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (want %s, %s or %s)",
			c.Storage.Backend, BackendFile, BackendMongo, BackendPostgres)
	}
	return nil
}
