// Package server implements the demo HTTP server: an HTML gallery of the
// showcased flags with a search box, the raw SVG assets and a small JSON API.
package server

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/esimov/countryflags"
)

//go:embed templates/*.html
var templateFS embed.FS

// MinQueryLen is the shortest query the gallery searches for.
const MinQueryLen = 2

// Options configures the gallery page.
type Options struct {
	Showcase      []string // codes shown on the landing page
	ShowcaseWidth float64  // rendering width of the showcased flags
}

// Server serves the flags over HTTP.
type Server struct {
	flags   *countryflags.Flags
	logger  *slog.Logger
	metrics *Metrics
	opts    Options
	tmpl    *template.Template
}

// New constructs the server with its dependencies.
func New(flags *countryflags.Flags, logger *slog.Logger, metrics *Metrics, opts Options) *Server {
	if opts.ShowcaseWidth <= 0 {
		opts.ShowcaseWidth = 150
	}
	return &Server{
		flags:   flags,
		logger:  logger,
		metrics: metrics,
		opts:    opts,
		tmpl:    template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

// Routes returns the router of the server.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/", s.handleIndex)
	r.Get("/flags/{code}.svg", s.handleSVG)
	r.Get("/metrics", s.metrics.Handler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/flags", s.handleList)
		r.Get("/flags/{code}", s.handleFlag)
		r.Get("/search", s.handleSearch)
	})
	return r
}

// instrument logs every request and records its duration by route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		elapsed := time.Since(start)
		s.metrics.RequestDuration.WithLabelValues(route, r.Method).Observe(elapsed.Seconds())
		s.logger.InfoContext(r.Context(), "request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", elapsed,
		)
	})
}

// NewHTTPServer builds an HTTP server with the defaults used by the serve command.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
