package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"glassdoor-search/pkg/api"
	"glassdoor-search/pkg/imagefetch"
	"glassdoor-search/pkg/logger"
	"glassdoor-search/pkg/pipeline"
)

type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Images   ImagesConfig   `mapstructure:"images"`
	Names    NamesConfig    `mapstructure:"names"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Server   ServerConfig   `mapstructure:"server"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

type ProviderConfig struct {
	Endpoint        string           `mapstructure:"endpoint"`
	UserAgent       string           `mapstructure:"user_agent"`
	TimeoutMs       int              `mapstructure:"timeout_ms"`
	MaxConnsPerHost int              `mapstructure:"max_conns_per_host"`
	MaxInFlight     int              `mapstructure:"max_in_flight"`
	Credentials     []api.Credential `mapstructure:"credentials"`
}

type ImagesConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	TimeoutMs   int  `mapstructure:"timeout_ms"`
	MaxBytes    int  `mapstructure:"max_bytes"`
	CacheSize   int  `mapstructure:"cache_size"`
	CacheTTLSec int  `mapstructure:"cache_ttl_sec"`
}

type NamesConfig struct {
	Excluded []string `mapstructure:"excluded"`
}

type PipelineConfig struct {
	MaxRetries      int `mapstructure:"max_retries"`
	RetryDelayMs    int `mapstructure:"retry_delay_ms"`
	Concurrency     int `mapstructure:"concurrency"`
	BreakerFailures int `mapstructure:"breaker_failures"`
	BreakerResetMs  int `mapstructure:"breaker_reset_ms"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"time_format"`
}

type Manager interface {
	Load(configPath string) (*Config, error)
	Reload() error
	GetConfig() *Config
	Watch(onChange func(*Config))
}

// Default returns the configuration used for keys missing from file and env.
// It has no credentials and does not validate until some are added.
func Default() *Config {
	client := api.DefaultClientConfig()
	images := imagefetch.DefaultConfig()
	run := pipeline.DefaultConfig()

	return &Config{
		Provider: ProviderConfig{
			Endpoint:        client.Endpoint,
			UserAgent:       client.UserAgent,
			TimeoutMs:       int(client.RequestTimeout / time.Millisecond),
			MaxConnsPerHost: client.MaxConnsPerHost,
			MaxInFlight:     8,
		},
		Images: ImagesConfig{
			Enabled:     true,
			TimeoutMs:   int(images.Timeout / time.Millisecond),
			MaxBytes:    images.MaxBytes,
			CacheSize:   images.CacheSize,
			CacheTTLSec: int(images.CacheTTL / time.Second),
		},
		Pipeline: PipelineConfig{
			MaxRetries:      run.MaxRetries,
			RetryDelayMs:    int(run.RetryDelay / time.Millisecond),
			Concurrency:     run.Concurrency,
			BreakerFailures: run.BreakerFailures,
			BreakerResetMs:  int(run.BreakerReset / time.Millisecond),
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	if c.Provider.Endpoint == "" {
		return fmt.Errorf("provider endpoint cannot be empty")
	}

	if len(c.Provider.Credentials) == 0 {
		return fmt.Errorf("at least one provider credential is required")
	}
	for i, cred := range c.Provider.Credentials {
		if cred.PartnerID <= 0 {
			return fmt.Errorf("credential %d: partner_id must be positive", i)
		}
		if cred.Key == "" {
			return fmt.Errorf("credential %d: key cannot be empty", i)
		}
	}

	if c.Provider.TimeoutMs <= 0 {
		return fmt.Errorf("provider timeout_ms must be positive")
	}

	if c.Images.Enabled && c.Images.MaxBytes <= 0 {
		return fmt.Errorf("images max_bytes must be positive")
	}

	if c.Pipeline.Concurrency <= 0 {
		return fmt.Errorf("pipeline concurrency must be positive")
	}

	if c.Pipeline.MaxRetries < 0 {
		return fmt.Errorf("pipeline max_retries cannot be negative")
	}

	if c.Pipeline.BreakerFailures > 0 && c.Pipeline.BreakerResetMs <= 0 {
		return fmt.Errorf("pipeline breaker_reset_ms must be positive when the breaker is enabled")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	return nil
}

// ClientConfig returns the search client settings
func (c *Config) ClientConfig() api.ClientConfig {
	client := api.DefaultClientConfig()
	client.Endpoint = c.Provider.Endpoint
	client.UserAgent = c.Provider.UserAgent
	client.RequestTimeout = time.Duration(c.Provider.TimeoutMs) * time.Millisecond
	if c.Provider.MaxConnsPerHost > 0 {
		client.MaxConnsPerHost = c.Provider.MaxConnsPerHost
	}
	client.MaxInFlight = c.Provider.MaxInFlight
	return client
}

// ImageConfig returns the preview image download settings
func (c *Config) ImageConfig() imagefetch.Config {
	return imagefetch.Config{
		Timeout:   time.Duration(c.Images.TimeoutMs) * time.Millisecond,
		MaxBytes:  c.Images.MaxBytes,
		UserAgent: c.Provider.UserAgent,
		CacheSize: c.Images.CacheSize,
		CacheTTL:  time.Duration(c.Images.CacheTTLSec) * time.Second,
	}
}

// PipelineConfig returns the runner settings
func (c *Config) PipelineConfig() pipeline.Config {
	return pipeline.Config{
		MaxRetries:      c.Pipeline.MaxRetries,
		RetryDelay:      time.Duration(c.Pipeline.RetryDelayMs) * time.Millisecond,
		Concurrency:     c.Pipeline.Concurrency,
		BreakerFailures: c.Pipeline.BreakerFailures,
		BreakerReset:    time.Duration(c.Pipeline.BreakerResetMs) * time.Millisecond,
	}
}

// LoggerSettings returns the logger settings
func (c *Config) LoggerSettings() logger.Config {
	return logger.Config{
		Level:      c.Logger.Level,
		Format:     c.Logger.Format,
		Output:     c.Logger.Output,
		TimeFormat: c.Logger.TimeFormat,
	}
}

// Address returns the server listen address
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ParseCredentials parses "partnerId:key" pairs separated by commas
func ParseCredentials(value string) ([]api.Credential, error) {
	var credentials []api.Credential

	for _, pair := range strings.Split(value, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		id, key, found := strings.Cut(pair, ":")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid credential %q: expected partnerId:key", pair)
		}

		partnerID, err := strconv.Atoi(strings.TrimSpace(id))
		if err != nil {
			return nil, fmt.Errorf("invalid credential partner id %q: %w", id, err)
		}

		credentials = append(credentials, api.Credential{PartnerID: partnerID, Key: strings.TrimSpace(key)})
	}

	return credentials, nil
}
