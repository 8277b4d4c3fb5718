package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/observability/log"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/scenario"
)

// Server answers scenario documents sent over websocket connections.
type Server struct {
	runner *scenario.Runner

	httpServer *http.Server
	listener   net.Listener

	// Session management
	sessions     sync.Map // map[string]*Session
	sessionCount int64    // atomic
	handled      int64    // atomic

	// Server state
	running int32 // atomic bool
	closed  int32 // atomic bool

	config Config
	logger log.Log

	workerGroup sync.WaitGroup
}

// Config holds server configuration
type Config struct {
	ListenAddr string

	// MaxMessageSize caps one incoming scenario document.
	MaxMessageSize int64
	// ReadTimeout closes sessions that stay silent this long.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() Config {
	return Config{
		ListenAddr:     "127.0.0.1:8080",
		MaxMessageSize: 1024 * 1024, // 1MB
		ReadTimeout:    time.Minute,
		WriteTimeout:   10 * time.Second,
	}
}

func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.Wrap(ErrInvalidConfig, "listen address is empty")
	}
	if c.MaxMessageSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "max message size %d", c.MaxMessageSize)
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return errors.Wrap(ErrInvalidConfig, "timeouts must be positive")
	}
	return nil
}

// Session is one connected client.
type Session struct {
	ID          string
	RemoteAddr  string
	ConnectedAt time.Time
	Requests    int64 // atomic
}

// Stats contains server statistics
type Stats struct {
	SessionCount int64
	Handled      int64
	Running      bool
}

func NewServer(config Config, runner *scenario.Runner, logger log.Log) *Server {
	logger = log.OrNop(logger)
	s := &Server{
		runner: runner,
		config: config,
		logger: logger.With(log.String("component", "server")),
	}
	s.logger.Info("Server created",
		log.String("listen_addr", config.ListenAddr),
		log.Int64("max_message_size", config.MaxMessageSize))
	return s
}

// Handler routes /ws to the scenario socket and /healthz to a liveness probe.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	if atomic.LoadInt32(&s.closed) == 1 {
		return ErrServerClosed
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}

	s.logger.Info("Starting server")

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.config.ListenAddr)
	if err != nil {
		atomic.StoreInt32(&s.running, 0)
		s.logger.Error("Failed to create listener", log.Error(err))
		return errors.Wrap(ErrListenerFailed, err.Error())
	}
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	s.workerGroup.Add(1)
	go func() {
		defer s.workerGroup.Done()
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Serve failed", log.Error(err))
		}
	}()

	s.logger.Info("Server listening", log.String("addr", listener.Addr().String()))
	return nil
}

// Addr is the bound address once started.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop shuts the HTTP server down and waits for the serve loop to exit.
func (s *Server) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 1, 0) {
		return ErrServerNotRunning
	}

	s.logger.Info("Stopping server")
	err := s.httpServer.Shutdown(ctx)
	s.workerGroup.Wait()
	s.logger.Info("Server stopped", log.Int64("handled", atomic.LoadInt64(&s.handled)))
	return err
}

// Close stops the server if needed and prevents restarts.
func (s *Server) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil // Already closed
	}
	if atomic.LoadInt32(&s.running) == 1 {
		return s.Stop(context.Background())
	}
	return nil
}

// GetStats returns server statistics
func (s *Server) GetStats() Stats {
	return Stats{
		SessionCount: atomic.LoadInt64(&s.sessionCount),
		Handled:      atomic.LoadInt64(&s.handled),
		Running:      atomic.LoadInt32(&s.running) == 1,
	}
}
