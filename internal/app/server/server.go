package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/xferant/panel/internal/app/config"
	"github.com/xferant/panel/internal/app/middleware"
	"github.com/xferant/panel/internal/app/render"
	"github.com/xferant/panel/internal/dev"
	"github.com/xferant/panel/internal/i18n"
	"github.com/xferant/panel/internal/views"
)

// ServiceName is reported by the API health endpoint.
const ServiceName = "xferant-vpn"

type Options struct {
	Version    string
	// LiveReload enables the websocket endpoint and script injection.
	LiveReload *dev.LiveReload
}

type Server struct {
	config   *config.Config
	renderer *render.Renderer
	store    *i18n.Store
	logger   *slog.Logger
	opts     Options
	mux      *chi.Mux
}

func New(cfg *config.Config, renderer *render.Renderer, store *i18n.Store, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		config:   cfg,
		renderer: renderer,
		store:    store,
		logger:   logger,
		opts:     opts,
		mux:      chi.NewRouter(),
	}
	s.setupMiddlewares()
	s.setupRoutes()
	return s
}

// Pages lists the HTML pages the panel serves, for static export.
func Pages() []render.StaticPage {
	return []render.StaticPage{
		{Path: "/", Component: views.RedirectPage("/users")},
		{Path: "/users", Component: views.UsersPage()},
		{Path: "/404.html", Component: views.NotFoundPage()},
	}
}

func (s *Server) setupMiddlewares() {
	s.mux.Use(chimw.RequestID)
	s.mux.Use(chimw.RealIP)
	s.mux.Use(chimw.Logger)
	s.mux.Use(chimw.Recoverer)
	if timeout := s.config.RequestTimeout(); timeout > 0 {
		s.mux.Use(middleware.Skip(chimw.Timeout(timeout), dev.LiveReloadPath))
	}
	s.mux.Use(middleware.Headers(s.config.Headers.Add, s.config.Headers.Remove))
	s.mux.Use(middleware.BasicAuth(s.config.Auth.Realm, s.config.AuthUsers(), s.config.Auth.Paths))
	s.mux.Use(middleware.Locale(s.store))

	if s.opts.LiveReload != nil {
		s.mux.Use(dev.InjectScript)
	}
}

func (s *Server) setupRoutes() {
	s.mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/users", http.StatusFound)
	})

	s.mux.Get("/users", func(w http.ResponseWriter, r *http.Request) {
		s.renderer.Page(w, r, http.StatusOK, views.UsersPage())
	})

	s.mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": s.opts.Version,
		})
	})

	s.mux.Get("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"version": s.opts.Version,
			"service": ServiceName,
		})
	})

	if s.opts.LiveReload != nil {
		s.mux.Get(dev.LiveReloadPath, s.opts.LiveReload.Handler())
	}

	s.mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderer.Page(w, r, http.StatusNotFound, views.NotFoundPage())
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.mux,
		ReadTimeout:  s.config.ReadTimeout(),
		WriteTimeout: s.config.WriteTimeout(),
		IdleTimeout:  s.config.IdleTimeout(),
	}
}

// Run serves until ctx is done, then shuts down within the configured
// shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := s.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting Xferant panel",
			"addr", srv.Addr,
			"version", s.opts.Version,
			"mode", s.renderer.Mode().String(),
			"locales", s.store.Bundle().Locales(),
			"dev", s.opts.LiveReload != nil,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout())
	defer cancel()

	if s.opts.LiveReload != nil {
		s.opts.LiveReload.Close()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.logger.Info("Server exited")
	return nil
}
