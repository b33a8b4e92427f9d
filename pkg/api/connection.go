package api

import (
	"time"

	"github.com/valyala/fasthttp"
)

// DefaultEndpoint is the Glassdoor public API root
const DefaultEndpoint = "http://api.glassdoor.com/api"

// ClientConfig holds configuration for the search client connections
type ClientConfig struct {
	Endpoint            string        `json:"endpoint"`
	UserAgent           string        `json:"user_agent"`
	RequestTimeout      time.Duration `json:"request_timeout"`
	MaxConnsPerHost     int           `json:"max_conns_per_host"`
	MaxIdleConnDuration time.Duration `json:"max_idle_conn_duration"`
	ReadTimeout         time.Duration `json:"read_timeout"`
	WriteTimeout        time.Duration `json:"write_timeout"`

	// MaxInFlight caps concurrent searches across all callers, 0 disables it
	MaxInFlight    int           `json:"max_in_flight"`
	AcquireTimeout time.Duration `json:"acquire_timeout"`
}

// DefaultClientConfig returns the settings the provider uses unless configured otherwise
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Endpoint:            DefaultEndpoint,
		UserAgent:           "Mozilla/5.0",
		RequestTimeout:      30 * time.Second,
		MaxConnsPerHost:     64,
		MaxIdleConnDuration: 90 * time.Second,
		ReadTimeout:         30 * time.Second,
		WriteTimeout:        10 * time.Second,
		AcquireTimeout:      5 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultClientConfig
func (c ClientConfig) withDefaults() ClientConfig {
	d := DefaultClientConfig()
	if c.Endpoint == "" {
		c.Endpoint = d.Endpoint
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = d.RequestTimeout
	}
	if c.MaxConnsPerHost <= 0 {
		c.MaxConnsPerHost = d.MaxConnsPerHost
	}
	if c.MaxIdleConnDuration <= 0 {
		c.MaxIdleConnDuration = d.MaxIdleConnDuration
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.AcquireTimeout <= 0 {
		c.AcquireTimeout = d.AcquireTimeout
	}
	return c
}

// newFastHTTPClient builds the pooled fasthttp client for the given config
func newFastHTTPClient(config ClientConfig) *fasthttp.Client {
	return &fasthttp.Client{
		Name:                config.UserAgent,
		MaxConnsPerHost:     config.MaxConnsPerHost,
		MaxIdleConnDuration: config.MaxIdleConnDuration,
		ReadTimeout:         config.ReadTimeout,
		WriteTimeout:        config.WriteTimeout,
	}
}
