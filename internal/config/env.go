package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use underscore delimiter (e.g., CORS_ALLOWED_ORIGINS).
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// APIKeys is a comma-separated list of keys allowed to translate programs.
	// Env: API_KEYS
	APIKeys string `envconfig:"API_KEYS"`

	// MaxProgramBytes caps the size of a submitted program document.
	// Env: MAX_PROGRAM_BYTES (default: 1048576)
	MaxProgramBytes int64 `envconfig:"MAX_PROGRAM_BYTES" default:"1048576"`

	// RequestTimeout is the API request timeout in seconds.
	// Env: REQUEST_TIMEOUT (default: 30)
	RequestTimeout float64 `envconfig:"REQUEST_TIMEOUT" default:"30"`

	// CORS configures cross-origin access.
	CORS CORSEnv `envconfig:"CORS"`

	// Serial configures serial port setup in generated sketches.
	Serial SerialEnv `envconfig:"SERIAL"`
}

// CORSEnv holds environment configuration for cross-origin access.
type CORSEnv struct {
	// AllowedOrigins is a comma-separated list of origins. Empty disables CORS.
	// Env: CORS_ALLOWED_ORIGINS (default: *)
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

// SerialEnv holds environment configuration for the serial port.
type SerialEnv struct {
	// BaudRate opens the serial port in setup() when non-zero.
	// Env: SERIAL_BAUD_RATE (default: 0)
	BaudRate int `envconfig:"BAUD_RATE" default:"0"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "BLOCKGEN" would require BLOCKGEN_PORT instead of PORT.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.APIKeys != "" {
		cfg = applyOption(cfg, WithAPIKeys(ParseAPIKeys(e.APIKeys)))
	}

	cfg = applyOption(cfg, WithMaxProgramBytes(e.MaxProgramBytes))
	cfg = applyOption(cfg, WithRequestTimeout(time.Duration(e.RequestTimeout*float64(time.Second))))
	cfg = applyOption(cfg, WithCORSConfig(e.CORS.ToCORSConfig()))
	cfg = applyOption(cfg, WithSerialBaudRate(e.Serial.BaudRate))

	return cfg
}

// ToCORSConfig converts CORSEnv to CORSConfig.
func (c CORSEnv) ToCORSConfig() CORSConfig {
	return NewCORSConfig().WithAllowedOrigins(ParseList(c.AllowedOrigins))
}

// applyOption applies an option to the config.
func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
