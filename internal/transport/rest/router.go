package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lularocha/glossary-builder/internal/config"
	"github.com/lularocha/glossary-builder/internal/metrics"
	"github.com/lularocha/glossary-builder/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateSessionToken(token string) (uuid.UUID, error)
}

// RouterDeps holds everything NewRouter wires together. Metrics and
// RateLimiter are optional.
type RouterDeps struct {
	Config      config.Config
	Logger      *slog.Logger
	Tokens      tokenValidator
	Glossary    *GlossaryHandler
	Session     *SessionHandler
	Export      *ExportHandler
	Health      *HealthHandler
	RateLimiter *middleware.RateLimiter
	Metrics     *metrics.Recorder
}

// NewRouter builds the chi router with the global middleware chain.
// Model-backed routes sit behind the per-IP rate limiter. Session tokens are
// only resolved under /api/session/glossary, so a stale token never blocks
// the anonymous routes.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	var observe middleware.Middleware
	if d.Metrics != nil {
		observe = middleware.Metrics(d.Metrics)
	}
	r.Use(middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.CORS(d.Config.CORS),
		observe,
	))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", d.Health.Health)
	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	if d.Metrics != nil && d.Config.Metrics.Enabled {
		r.Method(http.MethodGet, d.Config.Metrics.Path, d.Metrics.Handler())
	}

	limited := middleware.Chain()
	if d.RateLimiter != nil && d.Config.RateLimit.Enabled {
		limited = d.RateLimiter.Limit(d.Config.RateLimit.PerMinute, d.Config.RateLimit.Burst)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/session", d.Session.Create)
		r.Post("/export", d.Export.Export)

		r.Group(func(r chi.Router) {
			r.Use(limited)
			r.Post("/generate", d.Glossary.Generate)
			r.Post("/expand", d.Glossary.Expand)
			r.Post("/extend", d.Glossary.Extend)
		})

		r.Route("/session/glossary", func(r chi.Router) {
			r.Use(middleware.Session(d.Tokens), middleware.RequireSession)
			r.Get("/", d.Session.Get)
			r.Put("/", d.Session.Put)
			r.Delete("/", d.Session.Delete)
			r.Get("/export", d.Session.Export)

			r.Group(func(r chi.Router) {
				r.Use(limited)
				r.Post("/expand", d.Session.ExpandTerm)
				r.Post("/extend", d.Session.Extend)
			})
		})
	})

	return r
}
