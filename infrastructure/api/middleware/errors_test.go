package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/helixml/blockgen/application/service"
	"github.com/helixml/blockgen/domain/block"
	"github.com/helixml/blockgen/infrastructure/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError(t *testing.T) {
	err := NewAPIError(404, "block not found", nil)

	assert.Equal(t, 404, err.Code())
	assert.Equal(t, "block not found", err.Message())
	assert.Equal(t, "api error 404: block not found", err.Error())
}

func TestAPIError_WithCause(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewAPIError(500, "internal error", cause)

	assert.Equal(t, "api error 500: internal error: underlying error", err.Error())
	assert.Equal(t, cause, err.Unwrap())
}

func TestAuthenticationError(t *testing.T) {
	err := NewAuthenticationError("invalid API key")

	assert.Equal(t, "authentication failed: invalid API key", err.Error())
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestServerError(t *testing.T) {
	err := NewServerError(503, "service unavailable")

	assert.Equal(t, 503, err.StatusCode())
	assert.Equal(t, "service unavailable", err.Message())
	assert.Equal(t, "server error 503: service unavailable", err.Error())
	assert.ErrorIs(t, err, ErrServer)
}

func TestErrors_CanBeWrapped(t *testing.T) {
	wrapped := fmt.Errorf("request failed: %w", NewAuthenticationError("token expired"))

	assert.ErrorIs(t, wrapped, ErrAuthentication)

	var target *AuthenticationError
	assert.True(t, errors.As(wrapped, &target))
}

type errorBody struct {
	Errors []struct {
		Status string         `json:"status"`
		Code   string         `json:"code"`
		Title  string         `json:"title"`
		Detail string         `json:"detail"`
		Meta   map[string]any `json:"meta"`
		Source *struct {
			Pointer string `json:"pointer"`
		} `json:"source"`
	} `json:"errors"`
}

func writeError(t *testing.T, err error) (int, errorBody) {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/sketches", nil)

	WriteError(w, r, err, nil)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Errors, 1)
	assert.Equal(t, ContentTypeJSONAPI, w.Header().Get("Content-Type"))
	return w.Code, body
}

func TestWriteError_Status(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"api error", NewAPIError(http.StatusNotFound, "block not found", nil), http.StatusNotFound},
		{"authentication", NewAuthenticationError("nope"), http.StatusUnauthorized},
		{"server error", NewServerError(http.StatusBadGateway, "upstream"), http.StatusBadGateway},
		{"empty program", loader.ErrEmptyProgram, http.StatusBadRequest},
		{"invalid program", fmt.Errorf("%w: yaml: line 1", loader.ErrInvalidProgram), http.StatusBadRequest},
		{"unknown block", fmt.Errorf("block 3: %w", block.ErrUnknownKind), http.StatusUnprocessableEntity},
		{"genus mismatch", service.ErrGenusMismatch, http.StatusUnprocessableEntity},
		{"type mismatch", service.ErrTypeMismatch, http.StatusUnprocessableEntity},
		{"invalid literal", service.ErrInvalidLiteral, http.StatusUnprocessableEntity},
		{"invalid routine", service.ErrInvalidRoutine, http.StatusUnprocessableEntity},
		{"unexpected child", service.ErrUnexpectedChild, http.StatusUnprocessableEntity},
		{"closed", service.ErrClientClosed, http.StatusServiceUnavailable},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"translation deadline", fmt.Errorf("translate loop: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"unknown", io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, body := writeError(t, tc.err)
			assert.Equal(t, tc.want, code)
			assert.Equal(t, fmt.Sprint(tc.want), body.Errors[0].Status)
			assert.Equal(t, http.StatusText(tc.want), body.Errors[0].Title)
		})
	}
}

func TestWriteError_MissingInputCarriesBlock(t *testing.T) {
	err := fmt.Errorf("translate loop: %w", block.NewMissingInputError(7, "condition"))

	code, body := writeError(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	e := body.Errors[0]
	assert.Equal(t, "missing_input", e.Code)
	require.NotNil(t, e.Source)
	assert.Equal(t, ProgramPointer, e.Source.Pointer)
	assert.Equal(t, float64(7), e.Meta["block_id"])
	assert.Equal(t, "condition", e.Meta["socket"])
	assert.Equal(t, `translate loop: block 7: socket "condition" is not connected`, e.Detail)
}

func TestWriteError_UndeclaredRoutineCarriesBlock(t *testing.T) {
	code, body := writeError(t, block.NewUndeclaredRoutineError(12, "escape"))

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	e := body.Errors[0]
	assert.Equal(t, "undeclared_routine", e.Code)
	assert.Equal(t, float64(12), e.Meta["block_id"])
	assert.Equal(t, "escape", e.Meta["routine"])
}

func TestWriteError_TooLarge(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 64)))
	_, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 8))
	require.Error(t, err)

	code, body := writeError(t, err)

	assert.Equal(t, http.StatusRequestEntityTooLarge, code)
	assert.Equal(t, "program document exceeds 8 bytes", body.Errors[0].Detail)
}

func TestWriteError_InternalDetailHidden(t *testing.T) {
	_, body := writeError(t, errors.New("secret database path /var/x"))

	assert.Equal(t, "internal server error", body.Errors[0].Detail)
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
