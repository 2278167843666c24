package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8001"`
	StoreDriver     string        `env:"STORE_DRIVER" envDefault:"mongo"`
	MongoURL        string        `env:"MONGO_URL"`
	DBName          string        `env:"DB_NAME"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	StoreTimeout    time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
	RabbitMQURL     string        `env:"RABBITMQ_URL"` // vazio desliga os eventos
	WhatsAppURL     string        `env:"WHATSAPP_GROUP_URL" envDefault:"https://chat.whatsapp.com/EL8S41oFaw54zG6rDmTuqn?mode=ac_t"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file and then the process environment. Values
// already set in the environment win over the file.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// a missing .env is normal in containers
		_ = godotenv.Load(f)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURL == "" {
			errs = append(errs, errors.New("MONGO_URL is required when STORE_DRIVER=mongo"))
		}
		if c.DBName == "" {
			errs = append(errs, errors.New("DB_NAME is required when STORE_DRIVER=mongo"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORE_DRIVER=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q (want mongo or postgres)", c.StoreDriver))
	}

	if c.StoreTimeout <= 0 {
		errs = append(errs, errors.New("STORE_TIMEOUT must be positive"))
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		errs = append(errs, fmt.Errorf("unknown LOG_FORMAT %q (want json or console)", c.LogFormat))
	}

	return errors.Join(errs...)
}
