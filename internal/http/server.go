// Package http implements the transaction REST API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"moneytracker/internal/core"
	applog "moneytracker/internal/log"
	"moneytracker/internal/middleware/security"
	"moneytracker/internal/middleware/trace"
)

// TransactionService is what the API needs from the service layer.
type TransactionService interface {
	List(ctx context.Context) ([]core.Transaction, error)
	Create(ctx context.Context, nt core.NewTransaction) (core.Transaction, error)
	Ping(ctx context.Context) error
}

// Options tune the server. Zero values select defaults.
type Options struct {
	CORSAllowedOrigins []string
	Logger             *applog.Logger
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	MaxBodyBytes       int64
}

type Server struct {
	http.Server
	svc          TransactionService
	logger       *applog.Logger
	tracer       *trace.Middleware
	maxBodyBytes int64

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run http.Server.
func NewServer(addr string, svc TransactionService, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 15 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 15 * time.Second
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = 60 * time.Second
	}
	if opts.MaxBodyBytes == 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if len(opts.CORSAllowedOrigins) == 0 {
		opts.CORSAllowedOrigins = []string{"*"}
	}

	s := &Server{
		svc:          svc,
		logger:       logger.WithComponent(applog.ComponentAPI),
		tracer:       trace.NewMiddleware(security.ExtractClientIP, logger),
		maxBodyBytes: opts.MaxBodyBytes,
	}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)

	// API routes stay on the root router: a mux subrouter answers 404
	// instead of 405 on a method mismatch.
	apiHeaders := security.NewHeadersMiddleware(security.APIHeadersConfig()).Middleware
	router.Handle("/api/transaction", apiHeaders(http.HandlerFunc(s.handleListTransactions))).Methods(http.MethodGet)
	router.Handle("/api/transaction", apiHeaders(http.HandlerFunc(s.handleCreateTransaction))).Methods(http.MethodPost)
	router.Handle("/api/test", apiHeaders(http.HandlerFunc(handleTest))).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "Not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	cors := handlers.CORS(
		handlers.AllowedOrigins(opts.CORSAllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", trace.RequestIDHeader}),
		handlers.ExposedHeaders([]string{trace.RequestIDHeader}),
	)

	s.Server = http.Server{
		Addr:         addr,
		Handler:      s.tracer.Middleware(trace.Recovery(cors(router))),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  opts.IdleTimeout,
	}

	return s
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		m := s.tracer.GetMetrics()
		s.logger.InfoContext(ctx, "API server shutting down",
			"total_requests", m.TotalRequests,
			"failed_requests", m.FailedRequests)
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
