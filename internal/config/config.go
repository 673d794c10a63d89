package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"example.com/noteapp/internal/stringsx"
)

const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	Port    string `env:"PORT" env-default:"3001"`
	AppEnv  string `env:"APP_ENV" env-default:"production"`
	Backend string `env:"STORE_BACKEND" env-default:"mongo"`

	MongoURI      string `env:"MONGODB_URI"`
	TestMongoURI  string `env:"TEST_MONGODB_URI"`
	MongoDatabase string `env:"MONGODB_DATABASE" env-default:"noteApp"`

	DatabaseURL     string        `env:"DATABASE_URL"`
	MaxConns        int           `env:"DB_MAX_CONNS" env-default:"20"`
	MinConns        int           `env:"DB_MIN_CONNS" env-default:"2"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" env-default:"5m"`

	LogLevel           string        `env:"LOG_LEVEL" env-default:"info"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes       int64         `env:"MAX_BODY_BYTES" env-default:"102400"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" env-default:"*" env-separator:","`
}

// Load reads the environment and checks that the selected backend can be reached.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	switch cfg.Backend {
	case BackendMongo:
		if stringsx.IsEmpty(cfg.MongoConnString()) {
			return Config{}, fmt.Errorf("MONGODB_URI is required for the %s backend", BackendMongo)
		}
	case BackendPostgres:
		if stringsx.IsEmpty(cfg.DatabaseURL) {
			return Config{}, fmt.Errorf("DATABASE_URL is required for the %s backend", BackendPostgres)
		}
	case BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Backend)
	}

	return cfg, nil
}

// MongoConnString picks TEST_MONGODB_URI when running under APP_ENV=test.
func (c Config) MongoConnString() string {
	if c.AppEnv == "test" && c.TestMongoURI != "" {
		return c.TestMongoURI
	}
	return c.MongoURI
}

func (c Config) HTTPAddr() string {
	return ":" + c.Port
}
