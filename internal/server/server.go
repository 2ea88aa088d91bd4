// Package server exposes the export protocol layer: a process-local HTTP
// listener translating health and export requests into orchestrator runs,
// streaming the archived bundle back to the caller.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/goliatone/go-vault-export/internal/exporter"
	"github.com/goliatone/go-vault-export/internal/logging"
	"github.com/goliatone/go-vault-export/pkg/interfaces"
)

var (
	ErrServerRunning  = errors.New("server: already running")
	ErrServerRequired = errors.New("server: exporter service is required")
)

// Config captures the listener options and export defaults.
type Config struct {
	Host string
	Port int
	// Defaults seed request settings when the caller omits a field.
	Defaults interfaces.ExportSettings
	Logger   interfaces.Logger
}

// Server is a minimal HTTP protocol layer over the export orchestrator.
// Start and Stop are idempotent as a pair: starting while running is an
// error, stopping while stopped is a no-op.
type Server struct {
	exporter *exporter.Service
	cfg      Config
	logger   interfaces.Logger

	mu       sync.Mutex
	listener net.Listener
	httpSrv  *http.Server
}

// New builds the protocol layer around an export orchestrator.
func New(svc *exporter.Service, cfg Config) (*Server, error) {
	if svc == nil {
		return nil, ErrServerRequired
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Server{
		exporter: svc,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Start binds the socket and begins serving. It returns once the listener is
// accepting connections.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return ErrServerRunning
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", addr, err)
	}

	s.listener = listener
	s.httpSrv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func(srv *http.Server, ln net.Listener) {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server terminated", "error", err)
		}
	}(s.httpSrv, listener)

	s.logger.Info("export server listening", "addr", listener.Addr().String())
	return nil
}

// Stop releases the bound socket. Stopping a stopped server is a no-op; an
// export already streaming is not awaited.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}

	err := s.httpSrv.Shutdown(ctx)
	s.listener = nil
	s.httpSrv = nil
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.logger.Info("export server stopped")
	return nil
}

// Addr returns the bound address while running, empty otherwise.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler builds the route table. Routing is exact-match on method + path;
// every response carries permissive cross-origin headers and OPTIONS
// requests short-circuit with a bare 200.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /export", s.handleExportPost)
	mux.HandleFunc("GET /export", s.handleExportGet)
	mux.HandleFunc("/", s.handleNotFound)
	return withCORS(mux)
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
