package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sagarc03/servit"
)

type Service interface {
	Deliver(ctx context.Context, req servit.RequestView) (servit.Delivery, error)
	Open(ctx context.Context, d servit.Delivery) (io.ReadCloser, error)
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled" yaml:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins,omitempty"`
	AllowedMethods   []string `mapstructure:"allowed_methods" yaml:"allowed_methods,omitempty"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" yaml:"allowed_headers,omitempty"`
	ExposedHeaders   []string `mapstructure:"exposed_headers" yaml:"exposed_headers,omitempty"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" yaml:"max_age" validate:"min=0"`
}

type HandlerConfig struct {
	// ProfileParam is the query parameter naming the profile for a request.
	// Empty disables profile selection.
	ProfileParam string
	// Profiles maps profile names to their services. Requests naming an
	// unknown profile use the default service.
	Profiles map[string]Service
	CORS     CORSConfig
}

// Handler serves files through a Service.
type Handler struct {
	config  HandlerConfig
	service Service
}

// NewHandler creates a new Handler with the given configuration and default service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	return &Handler{
		config:  *config,
		service: service,
	}
}

// Router returns an http.Handler answering GET and HEAD for every path.
// Other methods get 405 from the router.
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

	r.Get("/*", h.handleGet)
	r.Head("/*", h.handleGet)

	return r
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	service := h.profile(r)

	d, err := service.Deliver(r.Context(), servit.NewRequestView(r))
	if err != nil {
		slog.DebugContext(r.Context(), "delivery refused", "path", r.URL.Path, "error", err)
		WriteNotFound(w)
		return
	}

	if !d.Body {
		WriteHead(w, d)
		return
	}

	// Open before any header goes out so a vanished file is still a clean 404.
	body, err := service.Open(r.Context(), d)
	if err != nil {
		slog.WarnContext(r.Context(), "open failed", "path", r.URL.Path, "error", err)
		WriteNotFound(w)
		return
	}

	WriteHead(w, d)

	n, err := servit.Pipeline{Source: body, Encoding: d.Encoding}.Run(r.Context(), w)
	if err != nil {
		slog.WarnContext(r.Context(), "stream aborted",
			"path", r.URL.Path,
			"encoding", d.Encoding,
			"sent", n,
			"error", err,
		)
	}
}

func (h *Handler) profile(r *http.Request) Service {
	if h.config.ProfileParam == "" || len(h.config.Profiles) == 0 {
		return h.service
	}

	name := r.URL.Query().Get(h.config.ProfileParam)
	if s, ok := h.config.Profiles[name]; ok && name != "" {
		return s
	}

	return h.service
}
