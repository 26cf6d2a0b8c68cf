package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:",squash"`
	Auth       AuthConfig       `mapstructure:",squash"`
	RateLimit  RateLimitConfig  `mapstructure:",squash"`
	Logging    LoggingConfig    `mapstructure:",squash"`
	Metrics    MetricsConfig    `mapstructure:",squash"`
	Summarizer SummarizerConfig `mapstructure:",squash"`
	Extraction ExtractionConfig `mapstructure:",squash"`
}

type ServerConfig struct {
	Host        string   `mapstructure:"host"`
	Port        int      `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	MaxFileSize int64    `mapstructure:"max_file_size"`
}

type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"rate_limit_enabled"`
	Limit           int           `mapstructure:"rate_limit"`
	CleanupInterval time.Duration `mapstructure:"rate_limit_cleanup_interval"`
}

type LoggingConfig struct {
	Debug bool   `mapstructure:"debug"`
	Level string `mapstructure:"log_level"`
	File  string `mapstructure:"log_file"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"metrics_enabled"`
	Port    int  `mapstructure:"metrics_port"`
}

type ExtractionConfig struct {
	TikaURL         string        `mapstructure:"tika_url"`
	OCRLanguages    []string      `mapstructure:"ocr_languages"`
	FetchTimeout    time.Duration `mapstructure:"fetch_timeout"`
	URLCheckTimeout time.Duration `mapstructure:"url_check_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8000)
	v.SetDefault("cors_origins", []string{"http://localhost:8000"})
	v.SetDefault("max_file_size", 10*1024*1024)

	v.SetDefault("api_key", "")

	v.SetDefault("rate_limit_enabled", true)
	v.SetDefault("rate_limit", 100)
	v.SetDefault("rate_limit_cleanup_interval", time.Minute)

	v.SetDefault("debug", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	v.SetDefault("metrics_enabled", true)
	v.SetDefault("metrics_port", 9090)

	v.SetDefault("tika_url", "http://localhost:9998")
	v.SetDefault("ocr_languages", []string{"eng"})
	v.SetDefault("fetch_timeout", 30*time.Second)
	v.SetDefault("url_check_timeout", 5*time.Second)

	setSummarizerDefaults(v)
}

// Load reads config.yaml from configPath, ./config or the working directory
// when present, then applies environment overrides. A missing file is not an
// error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Server.CORSOrigins = splitList(cfg.Server.CORSOrigins)
	cfg.Extraction.OCRLanguages = splitList(cfg.Extraction.OCRLanguages)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Server.Port))
	}
	if c.Server.MaxFileSize <= 0 {
		errs = append(errs, errors.New("max_file_size must be positive"))
	}
	if c.RateLimit.Limit < 0 {
		errs = append(errs, errors.New("rate_limit must not be negative"))
	}
	if c.RateLimit.CleanupInterval <= 0 {
		errs = append(errs, errors.New("rate_limit_cleanup_interval must be positive"))
	}
	if c.Metrics.Enabled && c.Metrics.Port == c.Server.Port {
		errs = append(errs, errors.New("metrics_port must differ from port"))
	}
	if err := c.Summarizer.validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// splitList accepts both YAML lists and comma separated strings.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
