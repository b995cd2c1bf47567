// Package web exposes the inference lab over a JSON HTTP API: rule and
// fact management, the two engines, diagnosis, and run history.
package web

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/inferlab/inferlab/pkg/inferlab"
)

// Server wraps a Lab behind HTTP handlers.
type Server struct {
	lab    *inferlab.Lab
	logger *zap.SugaredLogger
	mux    *http.ServeMux

	httpServer *http.Server
}

// New creates a Server for the given lab.
func New(lab *inferlab.Lab, logger *zap.SugaredLogger) *Server {
	s := &Server{
		lab:    lab,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("GET /api/kb", s.handleKB)
	s.mux.HandleFunc("GET /api/rules", s.handleListRules)
	s.mux.HandleFunc("POST /api/rules", s.handleAddRule)
	s.mux.HandleFunc("GET /api/rules/{id}", s.handleGetRule)
	s.mux.HandleFunc("PUT /api/rules/{id}", s.handleUpdateRule)
	s.mux.HandleFunc("DELETE /api/rules/{id}", s.handleDeleteRule)

	s.mux.HandleFunc("GET /api/facts", s.handleListFacts)
	s.mux.HandleFunc("POST /api/facts", s.handleAddFact)
	s.mux.HandleFunc("DELETE /api/facts/{fact}", s.handleDeleteFact)

	s.mux.HandleFunc("POST /api/forward", s.handleForward)
	s.mux.HandleFunc("POST /api/backward", s.handleBackward)
	s.mux.HandleFunc("POST /api/diagnose", s.handleDiagnose)

	s.mux.HandleFunc("GET /api/runs", s.handleListRuns)
	s.mux.HandleFunc("GET /api/runs/{id}", s.handleGetRun)
}

// Handler returns the request-logged handler tree, for tests and for
// embedding the API under another mux.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// ListenAndServe blocks serving the API until ctx is canceled, then
// drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("HTTP server listening", "addr", addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Warnw("HTTP shutdown incomplete", "error", err)
			return err
		}
		s.logger.Infow("HTTP server stopped")
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debugw("request",
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
