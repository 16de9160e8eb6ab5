package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sagarc03/pitchgate"
)

const (
	// HealthPath answers liveness checks without authentication.
	HealthPath = "/healthz"
	// DefaultRealm is the Basic auth realm used when none is configured.
	DefaultRealm = "Pitch Industrial"
)

// Service fetches the asset a raw request path points to.
type Service interface {
	Fetch(ctx context.Context, rawPath string) (pitchgate.Asset, error)
}

// CORSConfig configures the optional cross-origin middleware.
type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled" yaml:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins,omitempty"`
	AllowedMethods   []string `mapstructure:"allowed_methods" yaml:"allowed_methods,omitempty"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" yaml:"allowed_headers,omitempty"`
	ExposedHeaders   []string `mapstructure:"exposed_headers" yaml:"exposed_headers,omitempty"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials,omitempty"`
	MaxAge           int      `mapstructure:"max_age" yaml:"max_age,omitempty" validate:"min=0"`
}

type HandlerConfig struct {
	Realm    string
	Verifier RequestVerifier
	CORS     CORSConfig
}

// Handler serves authenticated static assets.
type Handler struct {
	config  HandlerConfig
	service Service
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	cfg := *config
	if cfg.Realm == "" {
		cfg.Realm = DefaultRealm
	}

	return &Handler{
		config:  cfg,
		service: service,
	}
}

// Router returns an http.Handler with the health check and the
// authenticated catch-all asset route. Every method is answered the same
// way; HEAD responses carry no body.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.HandleFunc(HealthPath, h.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(h.config.Verifier, h.config.Realm))
		r.HandleFunc("/*", h.handleAsset)
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	TextResponse(http.StatusOK, "ok").Send(w, r)
}

func (h *Handler) handleAsset(w http.ResponseWriter, r *http.Request) {
	h.Dispatch(r).Send(w, r)
}

// Dispatch resolves an authenticated request into its response without
// writing anything.
func (h *Handler) Dispatch(r *http.Request) Response {
	asset, err := h.service.Fetch(r.Context(), r.URL.EscapedPath())
	if err != nil {
		logError(r, err)
		return ErrorResponse(err)
	}

	return AssetResponse(asset)
}
