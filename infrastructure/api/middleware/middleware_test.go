package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/helixml/blockgen/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationID_GeneratesID(t *testing.T) {
	var seen string
	handler := CorrelationID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = log.CorrelationID(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(CorrelationIDHeader))
}

func TestCorrelationID_KeepsIncomingAndRequestID(t *testing.T) {
	var corrID, reqID string
	handler := chimiddleware.RequestID(CorrelationID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corrID = log.CorrelationID(r.Context())
		reqID = log.RequestID(r.Context())
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(CorrelationIDHeader, "corr-1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "corr-1", corrID)
	assert.NotEmpty(t, reqID)
	assert.Equal(t, "corr-1", w.Header().Get(CorrelationIDHeader))
}

func TestLogging_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusUnprocessableEntity, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}

	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))
			handler := CorrelationID(Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/sketches", nil)
			req.Header.Set(CorrelationIDHeader, "corr-9")
			handler.ServeHTTP(httptest.NewRecorder(), req)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
			assert.Equal(t, tc.level, entry["level"])
			assert.Equal(t, "request completed", entry["msg"])
			assert.Equal(t, float64(tc.status), entry["status"])
			assert.Equal(t, "/api/v1/sketches", entry["path"])
			assert.Equal(t, "corr-9", entry["correlation_id"])
		})
	}
}

func TestLogging_ImplicitOK(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.True(t, strings.Contains(buf.String(), `"status":200`), buf.String())
}
