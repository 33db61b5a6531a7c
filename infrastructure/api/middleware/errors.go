package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/helixml/blockgen/application/service"
	"github.com/helixml/blockgen/domain/block"
	"github.com/helixml/blockgen/infrastructure/api/jsonapi"
	"github.com/helixml/blockgen/infrastructure/loader"
)

// ContentTypeJSONAPI is the media type for JSON:API documents.
const ContentTypeJSONAPI = "application/vnd.api+json"

// ProgramPointer locates the program inside a sketch request document.
const ProgramPointer = "/data/attributes/program"

// Sentinel errors for API error kinds.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrServer         = errors.New("server error")
)

// APIError is an error with an explicit HTTP status code.
type APIError struct {
	code    int
	message string
	cause   error
}

// NewAPIError creates an APIError.
func NewAPIError(code int, message string, cause error) *APIError {
	return &APIError{code: code, message: message, cause: cause}
}

// Code returns the HTTP status code.
func (e *APIError) Code() int { return e.code }

// Message returns the client-facing message.
func (e *APIError) Message() string { return e.message }

// Error implements error.
func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("api error %d: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("api error %d: %s", e.code, e.message)
}

// Unwrap returns the cause.
func (e *APIError) Unwrap() error { return e.cause }

// AuthenticationError reports a missing or rejected API key.
type AuthenticationError struct {
	reason string
}

// NewAuthenticationError creates an AuthenticationError.
func NewAuthenticationError(reason string) *AuthenticationError {
	return &AuthenticationError{reason: reason}
}

// Error implements error.
func (e *AuthenticationError) Error() string {
	return "authentication failed: " + e.reason
}

// Is reports whether target is ErrAuthentication.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication
}

// ServerError reports a failure on the server side with a specific status.
type ServerError struct {
	statusCode int
	message    string
}

// NewServerError creates a ServerError.
func NewServerError(statusCode int, message string) *ServerError {
	return &ServerError{statusCode: statusCode, message: message}
}

// StatusCode returns the HTTP status code.
func (e *ServerError) StatusCode() int { return e.statusCode }

// Message returns the client-facing message.
func (e *ServerError) Message() string { return e.message }

// Error implements error.
func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.statusCode, e.message)
}

// Is reports whether target is ErrServer.
func (e *ServerError) Is(target error) bool {
	return target == ErrServer
}

// unprocessable lists errors raised by a well-formed program that cannot be
// translated.
var unprocessable = []error{
	block.ErrMissingInput,
	block.ErrUndeclaredRoutine,
	block.ErrUnknownKind,
	service.ErrGenusMismatch,
	service.ErrTypeMismatch,
	service.ErrInvalidLiteral,
	service.ErrInvalidRoutine,
	service.ErrUnexpectedChild,
}

// WriteError writes err as a JSON:API error document with a status derived
// from its kind. Unrecognised errors become 500 and are logged.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	apiErr := toJSONAPIError(err)
	status, _ := strconv.Atoi(apiErr.Status)

	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"error", err,
		)
	} else {
		logger.Debug("request rejected",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"error", err,
		)
	}

	w.Header().Set("Content-Type", ContentTypeJSONAPI)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(jsonapi.NewErrorResponse(apiErr))
}

func toJSONAPIError(err error) jsonapi.Error {
	var (
		apiErr      *APIError
		serverErr   *ServerError
		maxBytesErr *http.MaxBytesError
		missing     *block.MissingInputError
		undeclared  *block.UndeclaredRoutineError
	)

	switch {
	case errors.As(err, &apiErr):
		return newError(apiErr.Code(), apiErr.Message())
	case errors.Is(err, ErrAuthentication):
		return newError(http.StatusUnauthorized, err.Error())
	case errors.As(err, &serverErr):
		return newError(serverErr.StatusCode(), serverErr.Message())
	case errors.As(err, &maxBytesErr):
		return newError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("program document exceeds %d bytes", maxBytesErr.Limit))
	case errors.Is(err, loader.ErrEmptyProgram), errors.Is(err, loader.ErrInvalidProgram):
		e := newError(http.StatusBadRequest, err.Error())
		e.Source = &jsonapi.ErrorSource{Pointer: ProgramPointer}
		return e
	case errors.As(err, &missing):
		return generationError(err, "missing_input", jsonapi.Meta{
			"block_id": missing.BlockID(),
			"socket":   missing.Socket(),
		})
	case errors.As(err, &undeclared):
		return generationError(err, "undeclared_routine", jsonapi.Meta{
			"block_id": undeclared.BlockID(),
			"routine":  undeclared.Routine(),
		})
	case isUnprocessable(err):
		return generationError(err, "invalid_program", nil)
	case errors.Is(err, service.ErrClientClosed):
		return newError(http.StatusServiceUnavailable, "translator is shutting down")
	case errors.Is(err, context.DeadlineExceeded):
		return newError(http.StatusGatewayTimeout, "translation timed out")
	default:
		return newError(http.StatusInternalServerError, "internal server error")
	}
}

func isUnprocessable(err error) bool {
	for _, target := range unprocessable {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func newError(status int, detail string) jsonapi.Error {
	return jsonapi.NewError(strconv.Itoa(status), http.StatusText(status), detail)
}

func generationError(err error, code string, meta jsonapi.Meta) jsonapi.Error {
	e := newError(http.StatusUnprocessableEntity, err.Error())
	e.Code = code
	e.Source = &jsonapi.ErrorSource{Pointer: ProgramPointer}
	if meta != nil {
		e.Meta = &meta
	}
	return e
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", ContentTypeJSONAPI)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
