package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"glassdoor-search/pkg/logger"
)

// EnvPrefix prefixes every environment override, e.g. GLASSDOOR_SERVER_PORT
const EnvPrefix = "GLASSDOOR"

// CredentialsEnv holds "partnerId:key,..." pairs that replace the configured credentials
const CredentialsEnv = EnvPrefix + "_CREDENTIALS"

type manager struct {
	mu     sync.RWMutex
	config *Config
	viper  *viper.Viper
	path   string
}

func NewManager() Manager {
	return &manager{
		viper: viper.New(),
	}
}

// LoadDotEnv loads environment variables from .env files; missing files are ignored
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// Load reads the config file, if any, applies environment overrides and
// validates the result. An empty path uses defaults and environment only.
func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.path = configPath
	m.setupViper(configPath)

	config, err := m.read()
	if err != nil {
		return nil, err
	}

	m.config = config
	return config, nil
}

func (m *manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return fmt.Errorf("config not loaded")
	}

	config, err := m.read()
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	m.config = config
	return nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Watch reloads the config file whenever it changes and hands every valid
// new configuration to onChange. Invalid edits are logged and ignored.
func (m *manager) Watch(onChange func(*Config)) {
	m.mu.RLock()
	path := m.path
	m.mu.RUnlock()

	if path == "" {
		return
	}

	m.viper.OnConfigChange(func(event fsnotify.Event) {
		if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
			return
		}

		log := logger.WithField("file", event.Name)
		if err := m.Reload(); err != nil {
			log.WithError(err).Warn("Config change ignored")
			return
		}

		log.Info("Config reloaded")
		if onChange != nil {
			onChange(m.GetConfig())
		}
	})
	m.viper.WatchConfig()
}

func (m *manager) setupViper(configPath string) {
	if configPath != "" {
		m.viper.SetConfigFile(configPath)
	}

	m.viper.SetEnvPrefix(EnvPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	setDefaults(m.viper, Default())
}

func (m *manager) read() (*Config, error) {
	if m.path != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if value := m.viper.GetString("credentials"); value != "" {
		credentials, err := ParseCredentials(value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", CredentialsEnv, err)
		}
		config.Provider.Credentials = credentials
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults registers every key so environment overrides reach Unmarshal
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("provider.endpoint", d.Provider.Endpoint)
	v.SetDefault("provider.user_agent", d.Provider.UserAgent)
	v.SetDefault("provider.timeout_ms", d.Provider.TimeoutMs)
	v.SetDefault("provider.max_conns_per_host", d.Provider.MaxConnsPerHost)
	v.SetDefault("provider.max_in_flight", d.Provider.MaxInFlight)

	v.SetDefault("images.enabled", d.Images.Enabled)
	v.SetDefault("images.timeout_ms", d.Images.TimeoutMs)
	v.SetDefault("images.max_bytes", d.Images.MaxBytes)
	v.SetDefault("images.cache_size", d.Images.CacheSize)
	v.SetDefault("images.cache_ttl_sec", d.Images.CacheTTLSec)

	v.SetDefault("names.excluded", d.Names.Excluded)

	v.SetDefault("pipeline.max_retries", d.Pipeline.MaxRetries)
	v.SetDefault("pipeline.retry_delay_ms", d.Pipeline.RetryDelayMs)
	v.SetDefault("pipeline.concurrency", d.Pipeline.Concurrency)
	v.SetDefault("pipeline.breaker_failures", d.Pipeline.BreakerFailures)
	v.SetDefault("pipeline.breaker_reset_ms", d.Pipeline.BreakerResetMs)

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)

	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.format", d.Logger.Format)
	v.SetDefault("logger.output", d.Logger.Output)
	v.SetDefault("logger.time_format", d.Logger.TimeFormat)
}
