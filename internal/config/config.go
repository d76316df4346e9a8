package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPConfig struct {
	Addr            string        `yaml:"addr" env:"HTTP_ADDR" env-default:":8080"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"HTTP_REQUEST_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"15s"`
}

type PostgresConfig struct {
	URL string `yaml:"url" env:"POSTGRES_URL" env-required:"true"`
}

type NATSConfig struct {
	// Empty URL disables event publishing.
	URL string `yaml:"url" env:"NATS_URL"`
}

type PricingConfig struct {
	// TaxRate is a fraction, 0.10 means 10%.
	TaxRate  string `yaml:"tax_rate" env:"TAX_RATE" env-default:"0.10"`
	Currency string `yaml:"currency" env:"STORE_CURRENCY" env-default:"USD"`
}

type CartConfig struct {
	MergeRetries int `yaml:"merge_retries" env:"CART_MERGE_RETRIES" env-default:"3"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr" env:"METRICS_ADDR" env-default:":9090"`
}

type LoggerConfig struct {
	Level    string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Encoding string `yaml:"encoding" env:"LOG_ENCODING" env-default:"json"`
}

type Config struct {
	Env      string         `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	NATS     NATSConfig     `yaml:"nats"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Cart     CartConfig     `yaml:"cart"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logger   LoggerConfig   `yaml:"logger"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("cleanenv.ReadEnv: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cleanenv.ReadConfig %s: %w", path, err)
	}

	return &cfg, nil
}
