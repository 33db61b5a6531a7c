package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "pretty", cfg.LogFormat)
	assert.Equal(t, "", cfg.APIKeys)
	assert.Equal(t, int64(1048576), cfg.MaxProgramBytes)
	assert.Equal(t, 30.0, cfg.RequestTimeout)
	assert.Equal(t, "*", cfg.CORS.AllowedOrigins)
	assert.Equal(t, 0, cfg.Serial.BaudRate)
}

func TestEnvDefaults_MatchConfigDefaults(t *testing.T) {
	// Struct tag defaults must be literals, so keep them in sync with config.go.
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Host, "Host struct tag default should match DefaultHost")
	assert.Equal(t, DefaultPort, cfg.Port, "Port struct tag default should match DefaultPort")
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel, "LogLevel struct tag default should match DefaultLogLevel")
	assert.Equal(t, int64(DefaultMaxProgramBytes), cfg.MaxProgramBytes, "MaxProgramBytes struct tag default should match DefaultMaxProgramBytes")
	assert.Equal(t, DefaultRequestTimeout.Seconds(), cfg.RequestTimeout, "RequestTimeout struct tag default should match DefaultRequestTimeout")
	assert.Equal(t, DefaultCORSOrigins, cfg.CORS.AllowedOrigins, "AllowedOrigins struct tag default should match DefaultCORSOrigins")
}

func TestLoadFromEnv_OverrideValues(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("API_KEYS", "key1,key2,key3")
	t.Setenv("MAX_PROGRAM_BYTES", "4096")
	t.Setenv("REQUEST_TIMEOUT", "2.5")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "key1,key2,key3", cfg.APIKeys)
	assert.Equal(t, int64(4096), cfg.MaxProgramBytes)
	assert.Equal(t, 2.5, cfg.RequestTimeout)
}

func TestLoadFromEnv_Nested(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://editor.example.com")
	t.Setenv("SERIAL_BAUD_RATE", "9600")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000, https://editor.example.com", cfg.CORS.AllowedOrigins)
	assert.Equal(t, 9600, cfg.Serial.BaudRate)
}

func TestLoadFromEnv_InvalidPort(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("PORT", "not-a-port")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestLoadFromEnvWithPrefix(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("BLOCKGEN_PORT", "7000")
	t.Setenv("BLOCKGEN_SERIAL_BAUD_RATE", "115200")

	cfg, err := LoadFromEnvWithPrefix("BLOCKGEN")
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, 115200, cfg.Serial.BaudRate)
}

func TestEnvConfig_ToAppConfig(t *testing.T) {
	env := EnvConfig{
		Host:            "localhost",
		Port:            3000,
		LogLevel:        "WARN",
		LogFormat:       "json",
		APIKeys:         "a, b,,c",
		MaxProgramBytes: 2048,
		RequestTimeout:  5,
		CORS:            CORSEnv{AllowedOrigins: "http://localhost:3000"},
		Serial:          SerialEnv{BaudRate: 9600},
	}

	cfg := env.ToAppConfig()

	assert.Equal(t, "localhost:3000", cfg.Addr())
	assert.Equal(t, "WARN", cfg.LogLevel())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat())
	assert.Equal(t, []string{"a", "b", "c"}, cfg.APIKeys())
	assert.Equal(t, int64(2048), cfg.MaxProgramBytes())
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS().AllowedOrigins())
	assert.Equal(t, 9600, cfg.SerialBaudRate())
}

func TestEnvConfig_ToAppConfig_ZeroValuesKeepDefaults(t *testing.T) {
	cfg := EnvConfig{}.ToAppConfig()

	assert.Equal(t, DefaultHost, cfg.Host())
	assert.Equal(t, DefaultPort, cfg.Port())
	assert.Equal(t, int64(DefaultMaxProgramBytes), cfg.MaxProgramBytes())
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout())
	assert.False(t, cfg.CORS().Enabled())
}

func TestParseLogFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected LogFormat
	}{
		{"json", LogFormatJSON},
		{"JSON", LogFormatJSON},
		{"pretty", LogFormatPretty},
		{"PRETTY", LogFormatPretty},
		{"", LogFormatPretty},
		{"invalid", LogFormatPretty},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseLogFormat(tc.input))
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")
	content := `LOG_LEVEL=DEBUG
API_KEYS=key1,key2
`
	err := os.WriteFile(envFile, []byte(content), 0o644)
	require.NoError(t, err)

	clearEnvVars(t)

	err = LoadDotEnv(envFile)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", os.Getenv("LOG_LEVEL"))
	assert.Equal(t, "key1,key2", os.Getenv("API_KEYS"))
	clearEnvVars(t)
}

func TestLoadDotEnv_NonExistent(t *testing.T) {
	clearEnvVars(t)

	err := LoadDotEnv("/nonexistent/.env")
	assert.NoError(t, err)
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")
	content := `LOG_LEVEL=WARN
SERIAL_BAUD_RATE=57600
PORT=9100
`
	err := os.WriteFile(envFile, []byte(content), 0o644)
	require.NoError(t, err)

	clearEnvVars(t)
	t.Setenv("PORT", "9200")

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, "WARN", cfg.LogLevel())
	assert.Equal(t, 57600, cfg.SerialBaudRate())
	assert.Equal(t, 9200, cfg.Port(), "environment wins over .env")
	clearEnvVars(t)
}

// clearEnvVars unsets all config-related environment variables
func clearEnvVars(t *testing.T) {
	t.Helper()

	vars := []string{
		"HOST",
		"PORT",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"API_KEYS",
		"MAX_PROGRAM_BYTES",
		"REQUEST_TIMEOUT",
		"CORS_ALLOWED_ORIGINS",
		"SERIAL_BAUD_RATE",
		"BLOCKGEN_PORT",
		"BLOCKGEN_SERIAL_BAUD_RATE",
	}

	for _, v := range vars {
		_ = os.Unsetenv(v)
	}
}
