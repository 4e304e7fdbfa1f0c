// Package devserver serves the packaged bundle to a browser during
// development: static assets, the IPC endpoint, and live reload over SSE.
package devserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tuffi-studio/tuffi/internal/assets"
	"github.com/tuffi-studio/tuffi/internal/bridge"
	"github.com/tuffi-studio/tuffi/internal/config"
)

type Server struct {
	cfg      *config.Config
	resolver *assets.Resolver
	registry *bridge.Registry
	hub      *reloadHub
	logger   *slog.Logger
}

func New(cfg *config.Config, resolver *assets.Resolver, registry *bridge.Registry, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if registry == nil {
		registry = bridge.NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		cfg:      cfg,
		resolver: resolver,
		registry: registry,
		hub:      newReloadHub(),
		logger:   logger,
	}
}

// Reload tells every connected page to refresh.
func (s *Server) Reload() {
	s.hub.notify()
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.headerMiddleware)

	r.Get(reloadPath, s.hub.serveSSE)
	r.Post("/ipc", s.registry.ServeHTTP)
	r.Handle("/assets/*", assets.Handler(s.resolver))
	r.Get("/", s.serveIndex)

	return r
}

// ListenAndServe runs the dev server until the context is cancelled, then
// shuts it down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("dev server listening", "addr", s.cfg.Server.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) serveIndex(w http.ResponseWriter, req *http.Request) {
	data, err := s.resolver.Load("index.html")
	if err != nil {
		s.logger.Warn("index.html not found", "base", s.resolver.BaseDir())
		http.NotFound(w, req)
		return
	}

	// The packaged page references the webview's custom scheme. A browser
	// cannot fetch those URLs, so map them back onto the server's own paths.
	html := strings.ReplaceAll(string(data), `="`+assets.Scheme, `="/`)
	html = appendReloadScript(html)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (s *Server) headerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assets.ApplyIsolationHeaders(w.Header())
		for key, value := range s.cfg.Server.ExtraHeaders {
			w.Header().Set(key, value)
		}

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, req)
	})
}
