// Package http provides the HTTP server layer for assetvault.
//
// # Routes
//
//   - GET /api/assets: authenticated; returns the JSON asset index for the
//     calling client, or {} when its directory does not exist
//   - GET/HEAD /assets/{client}/*: public; serves one file from the named
//     client's directory with standard range/conditional semantics and no
//     directory listing
//   - GET /health: plaintext OK
//
// # Authentication
//
// The /api/assets route requires the x-client-id and x-client-secret headers.
// Missing headers yield 401; an unknown id or wrong secret yields 403. The
// secret check uses a constant-time comparison. Asset fetches are public by
// design: the index hands out URLs that must work without headers.
//
// # Middleware
//
// Requests pass through, in order: RealIP, request logging (uuid request ids),
// panic recovery, security headers (with Cross-Origin-Resource-Policy relaxed
// to cross-origin so assets embed from other origins), a per-IP rate limit
// (go-chi/httprate), and CORS (go-chi/cors, exact-origin allow-list,
// credentialed). Errors are JSON envelopes: {"error": code, "message": text}.
//
// # Usage
//
//	handlerCfg := http.HandlerConfig{
//	    Registry:  registry,
//	    CORS:      http.CORSConfig{AllowedOrigins: origins},
//	    RateLimit: http.RateLimitConfig{Requests: 120, Window: 60},
//	}
//	handler := http.NewHandler(&handlerCfg, service)
//	http.ListenAndServe(":4000", handler.Router())
//
// The service parameter must implement the Service interface with
// ClientByName, BuildIndex, and Open methods.
package http
