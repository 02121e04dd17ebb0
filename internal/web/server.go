// Package web hosts donation sessions over HTTP.
//
// Two hosts share one router. Under /api every response carries the
// session's latest command as JSON for clients that render it themselves.
// Under /donate the server renders the command as an HTML page (or an HTMX
// partial) and the participant answers with plain form posts.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/ddport/internal/config"
	"github.com/JonMunkholm/ddport/internal/core"
	"github.com/JonMunkholm/ddport/internal/web/middleware"
)

const contentSecurityPolicy = "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; frame-ancestors 'none'"

// Server is the HTTP host for donation sessions.
type Server struct {
	service         *core.Service
	cfg             *config.Config
	defaultPlatform string
	router          *chi.Mux
	server          *http.Server
	limiters        []*rateLimiter
}

// Option configures a Server.
type Option func(*Server)

// WithDefaultPlatform sets the platform used when a session is created
// without naming one.
func WithDefaultPlatform(key string) Option {
	return func(s *Server) { s.defaultPlatform = key }
}

// NewServer creates a Server.
func NewServer(service *core.Service, cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		service: service,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.router.Use(s.newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute).middleware)
	}
}

func (s *Server) setupRoutes() {
	s.router.Group(func(r chi.Router) {
		if s.cfg.Server.RequestTimeout > 0 {
			r.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
		}

		r.Get("/healthz", s.handleHealth)
		r.Get("/api/platforms", s.handleListPlatforms)
		r.Post("/api/sessions", s.handleStartSession)
		r.Get("/donate", s.handleStartDonation)

		r.Group(func(r chi.Router) {
			r.Use(sessionContext)

			r.Get("/api/sessions/{sessionID}", s.handleGetSession)
			r.Delete("/api/sessions/{sessionID}", s.handleEndSession)
			r.Post("/api/sessions/{sessionID}/skip", s.handleSkip)
			r.Post("/api/sessions/{sessionID}/retry", s.handleRetry)
			r.Post("/api/sessions/{sessionID}/consent", s.handleConsent)
			r.Post("/api/sessions/{sessionID}/continue", s.handleContinue)

			r.Get("/donate/{sessionID}", s.handleDonationPage)
			r.Post("/donate/{sessionID}/skip", s.handleDonateSkip)
			r.Post("/donate/{sessionID}/retry", s.handleDonateRetry)
			r.Post("/donate/{sessionID}/consent", s.handleDonateConsent)
			r.Post("/donate/{sessionID}/continue", s.handleDonateContinue)
		})
	})

	// Archive uploads are bounded by the upload timeout instead of the
	// request timeout.
	s.router.Group(func(r chi.Router) {
		r.Use(sessionContext)
		r.Use(s.uploadDeadline)
		if s.cfg.Rate.Enabled {
			r.Use(s.newRateLimiter(s.cfg.Rate.UploadLimit, time.Minute).middleware)
		}

		r.Post("/api/sessions/{sessionID}/file", s.handleSubmitFile)
		r.Post("/donate/{sessionID}/file", s.handleDonateFile)
	})
}

// uploadDeadline moves the connection's read and write deadlines and the
// request context deadline to the upload timeout.
func (s *Server) uploadDeadline(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timeout := s.cfg.Upload.Timeout
		if timeout <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		deadline := time.Now().Add(timeout)
		rc := http.NewResponseController(w)
		if err := rc.SetReadDeadline(deadline); err != nil && !errors.Is(err, http.ErrNotSupported) {
			slog.Warn("set upload read deadline", "error", err)
		}
		if err := rc.SetWriteDeadline(deadline); err != nil && !errors.Is(err, http.ErrNotSupported) {
			slog.Warn("set upload write deadline", "error", err)
		}

		ctx, cancel := context.WithDeadline(r.Context(), deadline)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:           s.router,
		ReadHeaderTimeout: s.cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		IdleTimeout:       s.cfg.Server.IdleTimeout,
	}

	slog.Info("server listening", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown stops the server and its background rate limiter cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	for _, l := range s.limiters {
		l.stop()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer")
			w.Header().Set("Cache-Control", "no-store")
			if enableCSP {
				w.Header().Set("Content-Security-Policy", contentSecurityPolicy)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON encodes v as JSON with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode", "error", err)
	}
}
