package http

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/assetvault/assetvault"
)

// Service is what the handler needs from the asset layer.
type Service interface {
	ClientByName(name string) (assetvault.Client, bool)
	BuildIndex(ctx context.Context, baseURL string, client assetvault.Client) (assetvault.AssetIndex, error)
	Open(ctx context.Context, client assetvault.Client, path string) (io.ReadSeekCloser, fs.FileInfo, error)
}

// CORSConfig holds the cross-origin allow-list. Origins are matched exactly.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig caps requests per caller IP within a window.
// Requests <= 0 disables the limiter.
type RateLimitConfig struct {
	Requests int `mapstructure:"requests" validate:"min=0"`
	Window   int `mapstructure:"window" validate:"min=0"` // seconds
}

type HandlerConfig struct {
	Registry  *assetvault.Registry
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

// Handler provides the HTTP handlers for the asset index and file endpoints.
type Handler struct {
	config  HandlerConfig
	service Service
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	return &Handler{
		config:  *config,
		service: service,
	}
}

// Router returns an http.Handler with all routes and middleware configured.
// Only /api/assets sits behind client authentication; asset fetches are
// path-scoped and public so index URLs work without headers.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(SecureHeaders)

	if h.config.RateLimit.Requests > 0 {
		window := time.Duration(h.config.RateLimit.Window) * time.Second
		if window <= 0 {
			window = time.Minute
		}
		r.Use(httprate.LimitByIP(h.config.RateLimit.Requests, window))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", HeaderClientID, HeaderClientSecret},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(ClientAuth(h.config.Registry))
		r.Get("/api/assets", h.handleIndex)
	})

	r.Get("/assets/{client}/*", h.handleAsset)
	r.Head("/assets/{client}/*", h.handleAsset)

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	client, ok := ClientFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusInternalServerError, "internal_error", "No client on request")
		return
	}

	index, err := h.service.BuildIndex(r.Context(), requestBaseURL(r), client)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, index)
}

func (h *Handler) handleAsset(w http.ResponseWriter, r *http.Request) {
	client, ok := h.service.ClientByName(routeParam(r, "client"))
	if !ok {
		WriteError(w, http.StatusNotFound, "not_found", "Unknown client")
		return
	}

	rel := routeParam(r, "*")

	content, info, err := h.service.Open(r.Context(), client, rel)
	if err != nil {
		if errors.Is(err, assetvault.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "not_found", "Asset not found")
		} else {
			HandleError(w, err)
		}
		return
	}
	defer func() { _ = content.Close() }()

	http.ServeContent(w, r, info.Name(), info.ModTime(), content)
}

// routeParam returns a URL parameter. chi matches routes on the raw path
// when the request carries percent-escapes, so the matched value can still
// be encoded and needs one decode.
func routeParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}

	unescaped, err := url.PathUnescape(v)
	if err != nil {
		return v
	}
	return unescaped
}

// requestBaseURL derives scheme and host from the inbound request so index
// URLs stay correct behind proxies presenting varying host headers.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return scheme + "://" + r.Host
}
