package middleware

import (
	"crypto/subtle"
	"net/http"
)

// APIKeyHeader carries the API key on write requests.
const APIKeyHeader = "X-API-KEY"

// AuthConfig holds the keys accepted by write-protected routes.
type AuthConfig struct {
	keys []string
}

// NewAuthConfigWithKeys creates an AuthConfig. Blank keys are ignored; an
// empty set disables protection.
func NewAuthConfigWithKeys(keys []string) AuthConfig {
	accepted := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			accepted = append(accepted, k)
		}
	}
	return AuthConfig{keys: accepted}
}

// Enabled reports whether any key is configured.
func (c AuthConfig) Enabled() bool {
	return len(c.keys) > 0
}

// Valid reports whether key matches a configured key.
func (c AuthConfig) Valid(key string) bool {
	if key == "" {
		return false
	}
	for _, k := range c.keys {
		if subtle.ConstantTimeCompare([]byte(k), []byte(key)) == 1 {
			return true
		}
	}
	return false
}

// WriteProtect requires a valid API key on mutating methods. GET, HEAD and
// OPTIONS pass through.
func WriteProtect(config AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled() || safeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			key := r.Header.Get(APIKeyHeader)
			if key == "" {
				WriteError(w, r, NewAuthenticationError("missing "+APIKeyHeader+" header"), nil)
				return
			}
			if !config.Valid(key) {
				WriteError(w, r, NewAuthenticationError("invalid API key"), nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WriteProtectAuth is WriteProtect built from a list of keys.
func WriteProtectAuth(keys []string) func(http.Handler) http.Handler {
	return WriteProtect(NewAuthConfigWithKeys(keys))
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
