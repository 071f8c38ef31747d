package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	CheckoutAdvanceNever        = "never"
	CheckoutAdvanceAlways       = "always"
	CheckoutAdvanceWhenComplete = "when_complete"

	CompletionMatchIdentity = "identity"
	CompletionMatchCount    = "count"
)

type Config struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Environment string `toml:"environment"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	RunMigrations  bool   `toml:"run_migrations"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// prometheus
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	LoginRateLimitAllowedPerMin int      `toml:"login_rate_limit_allowed_per_min"`
	AllowedOrigins              []string `toml:"allowed_origins"`

	// exercise gifs served under /assets/, disabled when empty
	AssetsPath string `toml:"assets_path"`

	// exercise search (ExerciseDB via RapidAPI)
	ExerciseSearchURL  string `toml:"exercise_search_url"`
	ExerciseSearchHost string `toml:"exercise_search_host"`

	// progression
	CheckoutAdvancePolicy string `toml:"checkout_advance_policy"`
	CompletionMatch       string `toml:"completion_match"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		if t.Development == nil {
			return nil, fmt.Errorf("missing development config section")
		}
		return t.Development, nil
	case "prod", "production":
		if t.Production == nil {
			return nil, fmt.Errorf("missing production config section")
		}
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the section for env, with defaults applied.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.CheckoutAdvancePolicy == "" {
		c.CheckoutAdvancePolicy = CheckoutAdvanceNever
	}
	if c.CompletionMatch == "" {
		c.CompletionMatch = CompletionMatchIdentity
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 15
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
}

func (c *Config) Validate() error {
	if c.Port <= 0 {
		return fmt.Errorf("port must be set")
	}

	switch c.CheckoutAdvancePolicy {
	case CheckoutAdvanceNever, CheckoutAdvanceAlways, CheckoutAdvanceWhenComplete:
	default:
		return fmt.Errorf("unknown checkout_advance_policy: %s", c.CheckoutAdvancePolicy)
	}

	switch c.CompletionMatch {
	case CompletionMatchIdentity, CompletionMatchCount:
	default:
		return fmt.Errorf("unknown completion_match: %s", c.CompletionMatch)
	}

	return nil
}
