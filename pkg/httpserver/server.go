package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrymomot/hookrelay/pkg/logger"
)

type config struct {
	addr              string
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	shutdownTimeout   time.Duration
	drainTimeout      time.Duration
	server            *http.Server
	logger            *slog.Logger
	startHooks        []func(*slog.Logger)
	drainHooks        []drainHook
}

// drainHook releases a component once the listener has stopped taking requests.
type drainHook struct {
	name string
	fn   func(context.Context) error
}

func defaultConfig() *config {
	return &config{
		addr:              ":8080",
		readHeaderTimeout: 10 * time.Second,
		shutdownTimeout:   5 * time.Second,
		drainTimeout:      10 * time.Second,
	}
}

// Server wraps http.Server with signal handling, graceful shutdown and an
// ordered drain of background components after the listener stops.
type Server struct {
	cfg  *config
	srv  *http.Server
	once sync.Once
	mu   sync.Mutex
	err  error
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Discard()
	}
	return &Server{cfg: cfg}
}

// Run starts the HTTP server and blocks until ctx is canceled, SIGINT or
// SIGTERM arrives, or the listener fails. On the way out the server is shut
// down and drain hooks run in registration order.
// It returns ErrStart wrapped with the underlying error if the server fails to start.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, ErrAlreadyRunning)
	}

	cfg := s.cfg
	srv := cfg.server
	if srv == nil {
		srv = &http.Server{}
	}

	if srv.Addr == "" {
		srv.Addr = cfg.addr
	}
	if srv.ReadTimeout == 0 && cfg.readTimeout != 0 {
		srv.ReadTimeout = cfg.readTimeout
	}
	if srv.ReadHeaderTimeout == 0 && cfg.readHeaderTimeout != 0 {
		srv.ReadHeaderTimeout = cfg.readHeaderTimeout
	}
	if srv.WriteTimeout == 0 && cfg.writeTimeout != 0 {
		srv.WriteTimeout = cfg.writeTimeout
	}
	if srv.IdleTimeout == 0 && cfg.idleTimeout != 0 {
		srv.IdleTimeout = cfg.idleTimeout
	}
	if srv.ErrorLog == nil {
		srv.ErrorLog = slog.NewLogLogger(cfg.logger.Handler(), slog.LevelWarn)
	}
	srv.Handler = handler
	s.srv = srv
	s.mu.Unlock()

	for _, h := range cfg.startHooks {
		h(cfg.logger)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	cfg.logger.Info("http server started", slog.String("addr", srv.Addr))

	var runErr error
	select {
	case <-ctx.Done():
		cfg.logger.Info("http server stopping", slog.String("reason", "context canceled"))
	case sig := <-stop:
		cfg.logger.Info("http server stopping", slog.String("signal", sig.String()))
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		// The listener never came up; still release what was registered.
		s.drain()
		return errors.Join(ErrStart, runErr)
	}

	shutdownErr := s.Shutdown(context.Background())
	if runErr == nil {
		runErr = <-errCh
	}
	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	return shutdownErr
}

// Shutdown stops accepting connections, waits for in-flight requests and then
// runs the drain hooks. It is safe for repeated calls; later calls return the
// result of the first one.
func (s *Server) Shutdown(ctx context.Context) error {
	s.once.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()

		var errs []error
		if srv != nil {
			sctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
			err := srv.Shutdown(sctx)
			cancel()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs = append(errs, errors.Join(ErrShutdown, err))
			}
		}

		if err := s.drainWith(ctx); err != nil {
			errs = append(errs, err)
		}

		s.cfg.logger.Info("http server stopped")
		s.err = errors.Join(errs...)
	})

	return s.err
}

func (s *Server) drain() {
	s.once.Do(func() {
		s.err = s.drainWith(context.Background())
	})
}

// drainWith runs every drain hook, each under its own drain timeout.
func (s *Server) drainWith(ctx context.Context) error {
	var errs []error
	for _, h := range s.cfg.drainHooks {
		dctx, cancel := context.WithTimeout(ctx, s.cfg.drainTimeout)
		err := h.fn(dctx)
		cancel()

		if err != nil {
			s.cfg.logger.Error("drain failed", logger.Component(h.name), logger.Error(err))
			errs = append(errs, errors.Join(ErrDrain, err))
			continue
		}
		s.cfg.logger.Debug("drained", logger.Component(h.name))
	}
	return errors.Join(errs...)
}
