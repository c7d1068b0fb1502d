package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	PostgresAddress  string `koanf:"postgres_address"`
	PostgresPort     string `koanf:"postgres_port"`
	PostgresDB       string `koanf:"postgres_db"`
	PostgresUsername string `koanf:"postgres_username"`
	PostgresPassword string `koanf:"postgres_password"`

	HTTPPort        string `koanf:"http_port"`
	LogLevel        string `koanf:"log_level"`
	OperatorWorkers int    `koanf:"operator_workers"`

	BadgeIncludeLegacy bool   `koanf:"badge_include_legacy"`
	BadgeHistoryLimit  int    `koanf:"badge_history_limit"`
	TimeZone           string `koanf:"timezone"`

	GenAIAPIKey string `koanf:"genai_api_key"`
	GenAIModel  string `koanf:"genai_model"`

	RabbitMQURL        string `koanf:"rabbitmq_url"`
	RabbitMQExchange   string `koanf:"rabbitmq_exchange"`
	RabbitMQRoutingKey string `koanf:"rabbitmq_routing_key"`

	// Location is resolved from TimeZone.
	Location *time.Location `koanf:"-"`
}

// In all cases the default behavior should be for the docker compose setup
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"postgres_address":     "localhost",
		"postgres_port":        "5433",
		"postgres_db":          "postgres",
		"postgres_username":    "postgres",
		"postgres_password":    "testpassword",
		"http_port":            "9446",
		"log_level":            "info",
		"operator_workers":     4,
		"badge_include_legacy": false,
		"badge_history_limit":  500,
		"timezone":             "Local",
		"genai_api_key":        "",
		"genai_model":          "gemini-2.5-flash",
		"rabbitmq_url":         "",
		"rabbitmq_exchange":    "claritybank.badges",
		"rabbitmq_routing_key": "badges.awarded",
	}
}

// ProcessEnvironmentVariables loads the defaults and overlays every
// environment variable, lower-cased, on top of them.
func ProcessEnvironmentVariables() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	err := k.Load(env.Provider("", ".", strings.ToLower), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.TimeZone, err)
	}
	c.Location = loc

	if c.OperatorWorkers < 1 {
		return fmt.Errorf("OPERATOR_WORKERS must be positive, got %d", c.OperatorWorkers)
	}
	if c.BadgeHistoryLimit < 1 {
		return fmt.Errorf("BADGE_HISTORY_LIMIT must be positive, got %d", c.BadgeHistoryLimit)
	}
	return nil
}

// PostgresURL builds the lib/pq connection string.
func (c *Config) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUsername, c.PostgresPassword),
		Host:     c.PostgresAddress + ":" + c.PostgresPort,
		Path:     "/" + c.PostgresDB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
