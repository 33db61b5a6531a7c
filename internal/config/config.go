// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8080
	DefaultLogLevel        = "INFO"
	DefaultMaxProgramBytes = 1 << 20
	DefaultRequestTimeout  = 30 * time.Second
	DefaultCORSOrigins     = "*"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// CORSConfig configures cross-origin access for browser-based editors.
type CORSConfig struct {
	allowedOrigins []string
}

// NewCORSConfig creates a new CORSConfig with defaults.
func NewCORSConfig() CORSConfig {
	return CORSConfig{
		allowedOrigins: []string{DefaultCORSOrigins},
	}
}

// AllowedOrigins returns the origins allowed to call the API.
func (c CORSConfig) AllowedOrigins() []string {
	origins := make([]string, len(c.allowedOrigins))
	copy(origins, c.allowedOrigins)
	return origins
}

// Enabled returns true if any origin is allowed.
func (c CORSConfig) Enabled() bool {
	return len(c.allowedOrigins) > 0
}

// WithAllowedOrigins returns a new config with the specified origins.
func (c CORSConfig) WithAllowedOrigins(origins []string) CORSConfig {
	c.allowedOrigins = make([]string, len(origins))
	copy(c.allowedOrigins, origins)
	return c
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host            string
	port            int
	logLevel        string
	logFormat       LogFormat
	apiKeys         []string
	maxProgramBytes int64
	requestTimeout  time.Duration
	cors            CORSConfig
	serialBaudRate  int
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:            DefaultHost,
		port:            DefaultPort,
		logLevel:        DefaultLogLevel,
		logFormat:       LogFormatPretty,
		apiKeys:         []string{},
		maxProgramBytes: DefaultMaxProgramBytes,
		requestTimeout:  DefaultRequestTimeout,
		cors:            NewCORSConfig(),
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// APIKeys returns the configured API keys.
func (c AppConfig) APIKeys() []string {
	keys := make([]string, len(c.apiKeys))
	copy(keys, c.apiKeys)
	return keys
}

// MaxProgramBytes returns the largest accepted program document.
func (c AppConfig) MaxProgramBytes() int64 { return c.maxProgramBytes }

// RequestTimeout returns the per-request timeout for API routes.
func (c AppConfig) RequestTimeout() time.Duration { return c.requestTimeout }

// CORS returns the cross-origin config.
func (c AppConfig) CORS() CORSConfig { return c.cors }

// SerialBaudRate returns the rate passed to Serial.begin in setup(), or zero.
func (c AppConfig) SerialBaudRate() int { return c.serialBaudRate }

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithAPIKeys sets the API keys.
func WithAPIKeys(keys []string) AppConfigOption {
	return func(c *AppConfig) {
		c.apiKeys = make([]string, len(keys))
		copy(c.apiKeys, keys)
	}
}

// WithMaxProgramBytes sets the document size limit.
func WithMaxProgramBytes(n int64) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.maxProgramBytes = n
		}
	}
}

// WithRequestTimeout sets the API request timeout.
func WithRequestTimeout(d time.Duration) AppConfigOption {
	return func(c *AppConfig) {
		if d > 0 {
			c.requestTimeout = d
		}
	}
}

// WithCORSConfig sets the cross-origin config.
func WithCORSConfig(cors CORSConfig) AppConfigOption {
	return func(c *AppConfig) { c.cors = cors }
}

// WithSerialBaudRate sets the serial rate. Zero disables it.
func WithSerialBaudRate(rate int) AppConfigOption {
	return func(c *AppConfig) { c.serialBaudRate = rate }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// API keys are shown as a count.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("addr", c.Addr()),
		slog.String("log_level", c.logLevel),
		slog.String("log_format", string(c.logFormat)),
		slog.Int("api_keys_count", len(c.apiKeys)),
		slog.Int64("max_program_bytes", c.maxProgramBytes),
		slog.Duration("request_timeout", c.requestTimeout),
		slog.String("cors_allowed_origins", strings.Join(c.cors.allowedOrigins, ",")),
		slog.Int("serial_baud_rate", c.serialBaudRate),
	}
}

// ParseList parses a comma-separated list, dropping blank entries.
func ParseList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// ParseAPIKeys parses a comma-separated string of API keys.
func ParseAPIKeys(s string) []string {
	return ParseList(s)
}
