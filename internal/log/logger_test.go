package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/helixml/blockgen/internal/config"
)

func decodeLine(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var data map[string]any
	if err := json.Unmarshal(b, &data); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	return data
}

func TestNewLogger(t *testing.T) {
	for _, format := range []config.LogFormat{config.LogFormatPretty, config.LogFormatJSON} {
		cfg := config.NewAppConfigWithOptions(config.WithLogFormat(format))
		logger := NewLogger(cfg)
		if logger == nil || logger.Slog() == nil {
			t.Fatalf("NewLogger(%s) returned an unusable logger", format)
		}
	}
}

func TestLogger_LogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "DEBUG")

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 log lines, got %d", len(lines))
	}
	for _, line := range lines {
		decodeLine(t, []byte(line))
	}
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "WARN")

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}
}

func TestLogger_PrettyWriterHasNoColour(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatPretty, "INFO")

	logger.Info("sketch translated", "program", "avoid")

	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("expected plain output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "program=avoid") {
		t.Errorf("expected program attr, got %q", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	logger.With("component", "mcp").Info("tool called")

	data := decodeLine(t, buf.Bytes())
	if data["component"] != "mcp" {
		t.Errorf("expected component=mcp, got %v", data["component"])
	}
}

func TestLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	ctx := context.Background()
	ctx = WithCorrelationID(ctx, "corr-123")
	ctx = WithRequestID(ctx, "req-456")
	ctx = WithProgram(ctx, "avoid_obstacles")

	logger.InfoContext(ctx, "sketch translated")

	data := decodeLine(t, buf.Bytes())
	if data["correlation_id"] != "corr-123" {
		t.Errorf("expected correlation_id=corr-123, got %v", data["correlation_id"])
	}
	if data["request_id"] != "req-456" {
		t.Errorf("expected request_id=req-456, got %v", data["request_id"])
	}
	if data["program"] != "avoid_obstacles" {
		t.Errorf("expected program=avoid_obstacles, got %v", data["program"])
	}
}

func TestLogger_WithContext_NoContextValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	if logger.WithContext(context.Background()) != logger {
		t.Error("WithContext should return the same logger for an empty context")
	}

	logger.WarnContext(context.Background(), "test message")

	data := decodeLine(t, buf.Bytes())
	for _, key := range []string{"correlation_id", "request_id", "program"} {
		if _, ok := data[key]; ok {
			t.Errorf("should not have %s when not set", key)
		}
	}
}

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()
	if CorrelationID(ctx) != "" || RequestID(ctx) != "" {
		t.Error("ids should be empty when not set")
	}

	ctx = WithRequestID(WithCorrelationID(ctx, "c"), "r")
	if CorrelationID(ctx) != "c" {
		t.Errorf("CorrelationID() = %v, want 'c'", CorrelationID(ctx))
	}
	if RequestID(ctx) != "r" {
		t.Errorf("RequestID() = %v, want 'r'", RequestID(ctx))
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"DEBUG", "DEBUG"},
		{"debug", "DEBUG"},
		{" info ", "INFO"},
		{"WARN", "WARN"},
		{"WARNING", "WARN"},
		{"error", "ERROR"},
		{"unknown", "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level := parseLevel(tt.input)
			if level.String() != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, level.String(), tt.expected)
			}
		})
	}
}

func TestConfigure(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	cfg := config.NewAppConfigWithOptions(
		config.WithLogLevel("DEBUG"),
		config.WithLogFormat(config.LogFormatJSON),
	)

	logger := Configure(cfg)

	if slog.Default() != logger.Slog() {
		t.Error("Configure() should install the slog default")
	}
}
