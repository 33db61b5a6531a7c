package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/helixml/blockgen/internal/log"
)

// CorrelationIDHeader carries the correlation ID across services.
const CorrelationIDHeader = "X-Correlation-ID"

// CorrelationID stores a correlation ID and the chi request ID in the request
// context for log.Logger.WithContext. An incoming X-Correlation-ID is kept;
// otherwise a new one is generated. The ID is echoed in the response.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(CorrelationIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := log.WithCorrelationID(r.Context(), id)
		if reqID := chimiddleware.GetReqID(ctx); reqID != "" {
			ctx = log.WithRequestID(ctx, reqID)
		}

		w.Header().Set(CorrelationIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
