package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Supabase SupabaseConfig `yaml:"supabase"`
	Postgres PostgresConfig `yaml:"postgres"`
	Tunnel   TunnelConfig   `yaml:"tunnel"`
	Sentry   SentryConfig   `yaml:"sentry"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Cache    CacheConfig    `yaml:"cache"`
}

type HTTPConfig struct {
	Port            int           `yaml:"port" env:"PORT" env-default:"8000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type SupabaseConfig struct {
	URL           string        `yaml:"url" env:"SUPABASE_URL"`
	ServiceKey    string        `yaml:"service_key" env:"SUPABASE_SERVICE_ROLE_KEY"`
	ProductsTable string        `yaml:"products_table" env:"SUPABASE_PRODUCTS_TABLE" env-default:"products"`
	ImageBucket   string        `yaml:"image_bucket" env:"SUPABASE_IMAGE_BUCKET" env-default:"product-images"`
	ImagePrefix   string        `yaml:"image_prefix" env:"SUPABASE_IMAGE_PREFIX" env-default:"products"`
	OrderFunction string        `yaml:"order_function" env:"SUPABASE_ORDER_FUNCTION" env-default:"create-order"`
	Timeout       time.Duration `yaml:"timeout" env:"SUPABASE_TIMEOUT" env-default:"10s"`
}

// Enabled reports whether both the project URL and the service key are set.
func (c SupabaseConfig) Enabled() bool {
	return c.URL != "" && c.ServiceKey != ""
}

type PostgresConfig struct {
	DSN string `yaml:"dsn" env:"POSTGRES_DSN"`
}

type TunnelConfig struct {
	Host         string        `yaml:"host" env:"SENTRY_TUNNEL_HOST" env-default:"o673219.ingest.us.sentry.io"`
	ProjectIDs   []string      `yaml:"project_ids" env:"SENTRY_TUNNEL_PROJECT_IDS" env-default:"4508087188455424"`
	Timeout      time.Duration `yaml:"timeout" env:"SENTRY_TUNNEL_TIMEOUT" env-default:"10s"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" env:"SENTRY_TUNNEL_MAX_BODY_BYTES" env-default:"1048576"`
	RateLimit    float64       `yaml:"rate_limit" env:"SENTRY_TUNNEL_RATE_LIMIT" env-default:"0"`
	Burst        int           `yaml:"burst" env:"SENTRY_TUNNEL_BURST" env-default:"20"`
}

type SentryConfig struct {
	DSN              string  `yaml:"dsn" env:"SENTRY_DSN"`
	TracesSampleRate float64 `yaml:"traces_sample_rate" env:"SENTRY_TRACES_SAMPLE_RATE" env-default:"1.0"`
}

type KafkaConfig struct {
	BrokerList      []string `yaml:"broker_list" env:"KAFKA_BROKERS"`
	OrderEventTopic string   `yaml:"order_event_topic" env:"KAFKA_ORDER_EVENT_TOPIC" env-default:"storefront.orders"`
}

type CacheConfig struct {
	ImageURLSize int           `yaml:"image_url_size" env:"CACHE_IMAGE_URL_SIZE" env-default:"256"`
	ImageURLTTL  time.Duration `yaml:"image_url_ttl" env:"CACHE_IMAGE_URL_TTL" env-default:"10m"`
}

var errInvalidPort = errors.New("http port must be between 1 and 65535")

func InitConfig() Config {
	cfg, err := Load(getConfigPath())
	if err != nil {
		panic("failed to read config: " + err.Error())
	}

	return cfg
}

// Load reads the YAML file at path when it is set and overlays the environment.
// An empty path reads the environment only.
func Load(path string) (Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("read env: %w", err)
		}
		return cfg, cfg.validate()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config file does not exist: %s", path)
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return errInvalidPort
	}
	if c.Tunnel.Host == "" || len(c.Tunnel.ProjectIDs) == 0 {
		return errors.New("tunnel host and project ids are required")
	}
	if c.Tunnel.Timeout <= 0 || c.Supabase.Timeout <= 0 {
		return errors.New("outbound timeouts must be positive")
	}

	return nil
}

func getConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	return path
}
