package http

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/assetvault/assetvault"
)

// Header names used by the client authentication middleware.
const (
	HeaderClientID     = "x-client-id"
	HeaderClientSecret = "x-client-secret"
	HeaderRequestID    = "X-Request-Id"
)

// clientKey is the context key for the authenticated client.
type clientKey struct{}

// WithClient returns a new context carrying the resolved client.
func WithClient(ctx context.Context, c assetvault.Client) context.Context {
	return context.WithValue(ctx, clientKey{}, c)
}

// ClientFromContext retrieves the authenticated client from the request
// context. It is only set on routes behind ClientAuth.
func ClientFromContext(ctx context.Context) (assetvault.Client, bool) {
	c, ok := ctx.Value(clientKey{}).(assetvault.Client)
	return c, ok
}

// ClientAuth creates middleware that enforces the x-client-id/x-client-secret
// header pair against the registry. A missing header short-circuits with 401;
// an unknown id or mismatched secret short-circuits with 403. On success the
// resolved client is attached to the request context.
func ClientAuth(registry *assetvault.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderClientID)
			secret := r.Header.Get(HeaderClientSecret)

			if id == "" || secret == "" {
				WriteError(w, http.StatusUnauthorized, "missing_credentials", "Client id and secret headers are required")
				return
			}

			client, ok := registry.Get(id)
			if !ok || subtle.ConstantTimeCompare([]byte(client.Secret), []byte(secret)) != 1 {
				WriteError(w, http.StatusForbidden, "invalid_credentials", "Unknown client id or secret mismatch")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClient(r.Context(), client)))
		})
	}
}

// SecureHeaders applies a hardened response header set. The resource policy
// stays cross-origin so served assets remain embeddable from origins other
// than the index consumer.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "0")
		h.Set("X-Permitted-Cross-Domain-Policies", "none")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Strict-Transport-Security", "max-age=15552000; includeSubDomains")
		h.Set("Cross-Origin-Resource-Policy", "cross-origin")

		next.ServeHTTP(w, r)
	})
}

// RequestLogger tags each request with an id, echoes it in the response, and
// logs method, path, status, size, and duration once the handler returns.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set(HeaderRequestID, reqID)

		start := time.Now()
		next.ServeHTTP(ww, r)

		slog.Info("request",
			"id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
