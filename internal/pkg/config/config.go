package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timeouts, API base URLs, etc.), standard settings
// Channel credentials are always read from the process environment, never from
// request payloads.
// -----------------------------------------------------------------------------

type Config struct {
	Server       ServerConfig
	DB           DBConfig
	CORS         CORSConfig
	Log          LogConfig
	Auth         AuthConfig
	Distribution DistributionConfig
	Facebook     FacebookConfig
	Eventbrite   EventbriteConfig
	Press        PressConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type AuthConfig struct {
	Secret string `envconfig:"AUTH_TOKEN_SECRET" required:"true"`
}

type DistributionConfig struct {
	// ChannelTimeout bounds each outbound attempt (primary or fallback).
	ChannelTimeout time.Duration `envconfig:"DISTRIBUTION_CHANNEL_TIMEOUT" default:"15s"`
	// DefaultRegion is used when a venue state has no timezone mapping.
	DefaultRegion  string        `envconfig:"DISTRIBUTION_DEFAULT_REGION" default:"TX"`
	OutboundRPS    float64       `envconfig:"DISTRIBUTION_OUTBOUND_RPS" default:"5"`
	PendingTTL     time.Duration `envconfig:"DISTRIBUTION_PENDING_TTL" default:"15m"`
	FingerprintTTL time.Duration `envconfig:"DISTRIBUTION_FINGERPRINT_TTL" default:"720h"`
}

type FacebookConfig struct {
	PageID       string `envconfig:"FACEBOOK_PAGE_ID" default:""`
	AccessToken  string `envconfig:"FACEBOOK_ACCESS_TOKEN" default:""`
	GraphVersion string `envconfig:"FACEBOOK_GRAPH_VERSION" default:""`
	BaseURL      string `envconfig:"FACEBOOK_GRAPH_BASE_URL" default:"https://graph.facebook.com"`
}

type EventbriteConfig struct {
	Token          string `envconfig:"EVENTBRITE_TOKEN" default:""`
	OrganizationID string `envconfig:"EVENTBRITE_ORGANIZATION_ID" default:""`
	BaseURL        string `envconfig:"EVENTBRITE_BASE_URL" default:"https://www.eventbriteapi.com/v3"`
}

type PressConfig struct {
	RelayURL   string   `envconfig:"PRESS_RELAY_URL" default:""`
	APIKey     string   `envconfig:"PRESS_API_KEY" default:""`
	FromName   string   `envconfig:"PRESS_FROM_NAME" default:"Event Team"`
	FromEmail  string   `envconfig:"PRESS_FROM_EMAIL" default:""`
	Recipients []string `envconfig:"PRESS_RECIPIENTS" default:""`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Auth: AuthConfig{
			Secret: "test-secret",
		},
		Distribution: DistributionConfig{
			ChannelTimeout: 2 * time.Second,
			DefaultRegion:  "TX",
			OutboundRPS:    100,
			PendingTTL:     15 * time.Minute,
			FingerprintTTL: 720 * time.Hour,
		},
	}
}
