package config

import (
	"testing"
	"time"
)

func TestDefaultConstants(t *testing.T) {
	if DefaultHost != "0.0.0.0" {
		t.Errorf("DefaultHost = %v, want '0.0.0.0'", DefaultHost)
	}
	if DefaultPort != 8080 {
		t.Errorf("DefaultPort = %v, want 8080", DefaultPort)
	}
	if DefaultLogLevel != "INFO" {
		t.Errorf("DefaultLogLevel = %v, want 'INFO'", DefaultLogLevel)
	}
	if DefaultMaxProgramBytes != 1048576 {
		t.Errorf("DefaultMaxProgramBytes = %v, want 1048576", DefaultMaxProgramBytes)
	}
	if DefaultRequestTimeout != 30*time.Second {
		t.Errorf("DefaultRequestTimeout = %v, want 30s", DefaultRequestTimeout)
	}
}

func TestNewAppConfig(t *testing.T) {
	cfg := NewAppConfig()

	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %v, want '0.0.0.0:8080'", cfg.Addr())
	}
	if cfg.LogFormat() != LogFormatPretty {
		t.Errorf("LogFormat() = %v, want pretty", cfg.LogFormat())
	}
	if len(cfg.APIKeys()) != 0 {
		t.Errorf("APIKeys() = %v, want empty", cfg.APIKeys())
	}
	if !cfg.CORS().Enabled() {
		t.Error("CORS().Enabled() = false, want true")
	}
	if cfg.SerialBaudRate() != 0 {
		t.Errorf("SerialBaudRate() = %v, want 0", cfg.SerialBaudRate())
	}
}

func TestAppConfig_Options(t *testing.T) {
	cfg := NewAppConfigWithOptions(
		WithHost("127.0.0.1"),
		WithPort(9000),
		WithLogLevel("DEBUG"),
		WithLogFormat(LogFormatJSON),
		WithAPIKeys([]string{"secret"}),
		WithMaxProgramBytes(512),
		WithRequestTimeout(time.Second),
		WithSerialBaudRate(9600),
	)

	if cfg.Addr() != "127.0.0.1:9000" {
		t.Errorf("Addr() = %v, want '127.0.0.1:9000'", cfg.Addr())
	}
	if cfg.LogLevel() != "DEBUG" {
		t.Errorf("LogLevel() = %v, want DEBUG", cfg.LogLevel())
	}
	if cfg.LogFormat() != LogFormatJSON {
		t.Errorf("LogFormat() = %v, want json", cfg.LogFormat())
	}
	if len(cfg.APIKeys()) != 1 || cfg.APIKeys()[0] != "secret" {
		t.Errorf("APIKeys() = %v, want [secret]", cfg.APIKeys())
	}
	if cfg.MaxProgramBytes() != 512 {
		t.Errorf("MaxProgramBytes() = %v, want 512", cfg.MaxProgramBytes())
	}
	if cfg.RequestTimeout() != time.Second {
		t.Errorf("RequestTimeout() = %v, want 1s", cfg.RequestTimeout())
	}
	if cfg.SerialBaudRate() != 9600 {
		t.Errorf("SerialBaudRate() = %v, want 9600", cfg.SerialBaudRate())
	}
}

func TestAppConfig_NonPositiveLimitsIgnored(t *testing.T) {
	cfg := NewAppConfigWithOptions(WithMaxProgramBytes(0), WithRequestTimeout(-time.Second))

	if cfg.MaxProgramBytes() != DefaultMaxProgramBytes {
		t.Errorf("MaxProgramBytes() = %v, want default", cfg.MaxProgramBytes())
	}
	if cfg.RequestTimeout() != DefaultRequestTimeout {
		t.Errorf("RequestTimeout() = %v, want default", cfg.RequestTimeout())
	}
}

func TestAppConfig_Apply(t *testing.T) {
	base := NewAppConfig()
	changed := base.Apply(WithPort(1234))

	if base.Port() != DefaultPort {
		t.Errorf("base Port() = %v, want unchanged %v", base.Port(), DefaultPort)
	}
	if changed.Port() != 1234 {
		t.Errorf("changed Port() = %v, want 1234", changed.Port())
	}
}

func TestAppConfig_APIKeysCopy(t *testing.T) {
	cfg := NewAppConfigWithOptions(WithAPIKeys([]string{"a"}))
	keys := cfg.APIKeys()
	keys[0] = "mutated"

	if cfg.APIKeys()[0] != "a" {
		t.Errorf("APIKeys() was mutated through returned slice")
	}
}

func TestAppConfig_LogAttrsHidesKeys(t *testing.T) {
	cfg := NewAppConfigWithOptions(WithAPIKeys([]string{"secret"}))

	for _, attr := range cfg.LogAttrs() {
		if attr.Value.String() == "secret" {
			t.Errorf("LogAttrs() leaked API key in %q", attr.Key)
		}
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"a", 1},
		{"a,b", 2},
		{" a , , b ", 2},
		{",,,", 0},
	}
	for _, tc := range tests {
		if got := ParseList(tc.input); len(got) != tc.want {
			t.Errorf("ParseList(%q) = %v, want %d items", tc.input, got, tc.want)
		}
	}
}
