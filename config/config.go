package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultPublicViewerID is the collection shown to visitors without a session.
const DefaultPublicViewerID = "1a5ab17f-d3de-4b43-84ef-de49c1b54a45"

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	// Catalog stores, one per platform family, and the ownership/auth store.
	DatabaseURL          string `env:"DATABASE_URL" envDefault:"host=localhost port=5432 user=postgres dbname=ps1 sslmode=disable"`
	N64DatabaseURL       string `env:"N64_DATABASE_URL" envDefault:"host=localhost port=5432 user=postgres dbname=n64 sslmode=disable"`
	OwnershipDatabaseURL string `env:"OWNERSHIP_DATABASE_URL"`
	AutoMigrate          bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	PublicViewerID string        `env:"PUBLIC_VIEWER_ID"`
	AuthSecret     string        `env:"AUTH_SECRET"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	RedisURL         string        `env:"REDIS_URL"`
	RedisPassword    string        `env:"REDIS_PASSWORD"`
	ToggleRateLimit  int           `env:"TOGGLE_RATE_LIMIT" envDefault:"60"`
	ToggleRateWindow time.Duration `env:"TOGGLE_RATE_WINDOW" envDefault:"1m"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE" envDefault:"logs/app.log"`

	UseHTTPS    bool   `env:"USE_HTTPS" envDefault:"false"`
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,https://localhost:3000"`

	OTelEnabled     bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTelEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelInsecure    bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
	OTelServiceName string  `env:"OTEL_SERVICE_NAME" envDefault:"collection-tracker"`
	OTelSampleRatio float64 `env:"OTEL_SAMPLER_RATIO" envDefault:"0.1"`
}

// Load reads .env (if any) and then the process environment.
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.OwnershipDatabaseURL == "" {
		cfg.OwnershipDatabaseURL = cfg.DatabaseURL
	}
	if cfg.PublicViewerID == "" {
		cfg.PublicViewerID = DefaultPublicViewerID
	}
	if cfg.UseHTTPS && (cfg.TLSCertFile == "" || cfg.TLSKeyFile == "") {
		return nil, fmt.Errorf("USE_HTTPS requires TLS_CERT_FILE and TLS_KEY_FILE")
	}
	return &cfg, nil
}

func (c *Config) IsRelease() bool { return c.GinMode == "release" }
