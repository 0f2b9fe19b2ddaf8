// Package config loads the settings of the nameless command line tool from a
// YAML file, NAMELESS_* environment variables and defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/namelessmc/go-nameless"
	"github.com/namelessmc/go-nameless/observability"
)

// EnvPrefix prefixes every environment override, e.g. NAMELESS_WEBSITE_API_KEY.
const EnvPrefix = "NAMELESS"

// Config represents the complete configuration structure
type Config struct {
	Website WebsiteConfig `mapstructure:"website"`
	Client  ClientConfig  `mapstructure:"client"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// WebsiteConfig addresses the website. Either URL, the full API URL from the
// StaffCP, or Host together with APIKey must be set.
type WebsiteConfig struct {
	URL                string `mapstructure:"url"`
	Host               string `mapstructure:"host"`
	APIKey             string `mapstructure:"api_key"`
	InsecureSkipVerify bool   `mapstructure:"insecure_skip_verify"`
}

// ClientConfig tunes the HTTP client
type ClientConfig struct {
	UserAgent          string        `mapstructure:"user_agent"`
	Timeout            time.Duration `mapstructure:"timeout"`
	RateLimitPerMinute int           `mapstructure:"rate_limit_per_minute"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// Load reads configPath, or nameless.yaml from the usual locations when it is
// empty. A missing file is only an error when configPath names one.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("nameless")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "nameless"))
		}
		v.AddConfigPath("/etc/nameless/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "error reading config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling config")
	}

	if err := validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// setDefaults registers every key so that AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("website.url", "")
	v.SetDefault("website.host", "")
	v.SetDefault("website.api_key", "")
	v.SetDefault("website.insecure_skip_verify", false)

	v.SetDefault("client.user_agent", "nameless-cli/"+nameless.Version)
	v.SetDefault("client.timeout", nameless.DefaultTimeout)
	v.SetDefault("client.rate_limit_per_minute", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Website.URL == "" {
		if cfg.Website.Host == "" {
			return errors.New("website.url or website.host is required")
		}
		if cfg.Website.APIKey == "" || cfg.Website.APIKey == "your-api-key-here" {
			return errors.New("website.api_key must be set to a valid API key")
		}
	}

	if cfg.Client.Timeout < 0 {
		return errors.Newf("client.timeout must not be negative: %s", cfg.Client.Timeout)
	}
	if cfg.Client.RateLimitPerMinute < 0 {
		return errors.Newf("client.rate_limit_per_minute must not be negative: %d", cfg.Client.RateLimitPerMinute)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return errors.Newf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return errors.Newf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// NamelessConfig builds the library configuration. Request and response bodies
// are logged when the logging level is debug.
func (c *Config) NamelessConfig(logger observability.Logger) (*nameless.Config, error) {
	out := &nameless.Config{
		Host:               c.Website.Host,
		APIKey:             c.Website.APIKey,
		InsecureSkipVerify: c.Website.InsecureSkipVerify,
		UserAgent:          c.Client.UserAgent,
		Timeout:            c.Client.Timeout,
		RateLimitPerMinute: c.Client.RateLimitPerMinute,
		Debug:              c.Logging.Level == "debug",
		Logger:             logger,
	}

	if c.Website.URL != "" {
		endpoint, err := nameless.ParseEndpoint(c.Website.URL)
		if err != nil {
			return nil, errors.Wrap(err, "website.url")
		}
		out.Endpoint = endpoint
	}

	return out, nil
}
