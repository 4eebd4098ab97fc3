// Package server exposes the landing page builder over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	mvpbuild "github.com/alnah/go-mvpbuild"
	"github.com/alnah/go-mvpbuild/internal/config"
	"github.com/alnah/go-mvpbuild/internal/store"
)

// shutdownTimeout bounds how long in-flight requests may finish after the
// run context is canceled.
const shutdownTimeout = 10 * time.Second

// PageBuilder is the part of mvpbuild.Builder the handlers use.
type PageBuilder interface {
	Build(ctx context.Context, spec mvpbuild.PageSpec) mvpbuild.ValidationResult
}

var _ PageBuilder = (*mvpbuild.Builder)(nil)

// Server serves the builder API.
type Server struct {
	builder PageBuilder
	store   store.Store
	logger  *zap.Logger
	cfg     config.ServerConfig
	router  *mux.Router
}

// New wires routes and middleware. A nil logger is replaced by a no-op one.
func New(builder PageBuilder, st store.Store, logger *zap.Logger, cfg config.ServerConfig) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		builder: builder,
		store:   st,
		logger:  logger,
		cfg:     cfg,
		router:  mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(requestID, s.accessLog, s.recoverer, bodyLimit(s.cfg.MaxBodyBytes))

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/mvp/validate", s.handleValidate).Methods(http.MethodPost)
	api.HandleFunc("/ideas/{ideaId}/mvp", s.handlePutPage).Methods(http.MethodPut)
	api.HandleFunc("/ideas/{ideaId}/mvp", s.handleGetPage).Methods(http.MethodGet)
	api.HandleFunc("/ideas/{ideaId}/mvp", s.handleDeletePage).Methods(http.MethodDelete)
	api.HandleFunc("/events", s.handleEvent).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on cfg.Addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     zap.NewStdLog(s.logger),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
