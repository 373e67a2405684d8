// Package config loads service settings from an optional YAML file and the
// process environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrinalgaur2005/hintr-active-jobs/queue"
)

// Config is the top-level configuration.
type Config struct {
	Redis    RedisConfig `yaml:"redis"`
	HTTP     HTTPConfig  `yaml:"http"`
	Strategy string      `yaml:"strategy"`
	LogLevel string      `yaml:"log_level"`
}

type RedisConfig struct {
	URL            string `yaml:"url"`
	ConnectTimeout int    `yaml:"connect_timeout"` // seconds
	ReadTimeout    int    `yaml:"read_timeout"`    // seconds
	WriteTimeout   int    `yaml:"write_timeout"`   // seconds
}

type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func Default() *Config {
	return &Config{
		HTTP:     HTTPConfig{Addr: ":8080"},
		Strategy: string(queue.StrategyComposite),
		LogLevel: "info",
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config yaml: %w", err)
		}
	}
	FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// FromEnv overlays environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("REDIS_CONNECTION_STRING"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("ACTIVE_JOBS_STRATEGY"); v != "" {
		cfg.Strategy = v
	}
	// Azure Functions custom handlers are told where to listen through
	// FUNCTIONS_CUSTOMHANDLER_PORT; LISTEN_ADDR wins when both are set.
	if v := os.Getenv("FUNCTIONS_CUSTOMHANDLER_PORT"); v != "" {
		cfg.HTTP.Addr = ":" + v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = nil
		for _, p := range strings.Split(v, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				cfg.HTTP.AllowedOrigins = append(cfg.HTTP.AllowedOrigins, p)
			}
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func (c *Config) Validate() error {
	if c.Redis.URL == "" {
		return queue.ErrMissingConnectionString
	}
	if _, err := queue.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Redis.ConnectTimeout < 0 || c.Redis.ReadTimeout < 0 || c.Redis.WriteTimeout < 0 {
		return fmt.Errorf("redis timeouts must be >= 0")
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr must not be empty")
	}
	return nil
}

// CountingStrategy returns the validated strategy.
func (c *Config) CountingStrategy() queue.Strategy {
	s, _ := queue.ParseStrategy(c.Strategy)
	return s
}

func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log_level: must be one of debug, info, warn, error; got %q", c.LogLevel)
}

func (c *Config) RedisOptions() queue.RedisOptions {
	return queue.RedisOptions{
		URL:            c.Redis.URL,
		ConnectTimeout: time.Duration(c.Redis.ConnectTimeout) * time.Second,
		ReadTimeout:    time.Duration(c.Redis.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(c.Redis.WriteTimeout) * time.Second,
	}
}
