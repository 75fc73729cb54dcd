package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arifwid/kantorku/internal/attendance"
	"github.com/arifwid/kantorku/internal/audit"
	"github.com/arifwid/kantorku/internal/auth"
	"github.com/arifwid/kantorku/internal/infrastructure/config"
	"github.com/arifwid/kantorku/internal/infrastructure/database"
	"github.com/arifwid/kantorku/internal/infrastructure/logging"
	"github.com/arifwid/kantorku/internal/menu"
	"github.com/arifwid/kantorku/internal/metrics"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config     *config.Config
	Logger     *logging.Logger
	Auth       *auth.Service
	Identities auth.IdentityRepository
	Menu       menu.Repository
	Attendance attendance.Repository
	Audit      audit.Repository
	Metrics    metrics.Recorder
	Gatherer   prometheus.Gatherer // serves /metrics; nil disables the endpoint
	DB         *database.DB        // used by the health check; nil skips it
	Version    string
}

// Server is the HTTP API server for kantorku.
//
// It manages the HTTP listener, routes, and middleware. The server is
// created with New() and started with Start().
type Server struct {
	cfg        *config.Config
	logger     *logging.Logger
	auth       *auth.Service
	identities auth.IdentityRepository
	menu       menu.Repository
	attendance attendance.Repository
	audit      audit.Repository
	metrics    metrics.Recorder
	gatherer   prometheus.Gatherer
	db         *database.DB
	version    string
	server     *http.Server
	limiter    *rateLimiter
	cancel     context.CancelFunc
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("auth service is required")
	}
	if deps.Identities == nil {
		return nil, fmt.Errorf("identity repository is required")
	}

	s := &Server{
		cfg:        deps.Config,
		logger:     deps.Logger.With("component", "api"),
		auth:       deps.Auth,
		identities: deps.Identities,
		menu:       deps.Menu,
		attendance: deps.Attendance,
		audit:      deps.Audit,
		metrics:    deps.Metrics,
		gatherer:   deps.Gatherer,
		db:         deps.DB,
		version:    deps.Version,
	}

	if deps.Config.Security.RateLimit.Enabled {
		s.limiter = newRateLimiter(deps.Config.Security.RateLimit)
	}

	return s, nil
}

// Start begins listening for HTTP connections.
//
// It builds the router, starts the rate limiter cleanup loop, and
// launches the HTTP listener in a background goroutine. The server can
// be stopped with Close().
func (s *Server) Start(ctx context.Context) error {
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	if s.limiter != nil {
		go s.limiter.cleanupLoop(srvCtx)
	}

	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       s.cfg.ReadTimeout(),
		ReadHeaderTimeout: s.cfg.ReadTimeout(),
		WriteTimeout:      s.cfg.WriteTimeout(),
		IdleTimeout:       s.cfg.IdleTimeout(),
	}

	go func() {
		s.logger.Info("API server starting", "address", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete, then
// forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}
