package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Config holds the server configuration
type Config struct {
	Host            string
	Port            int
	Timeout         time.Duration
	EnableMetrics   bool
	EnableCORS      bool
	MaxBodyBytes    int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            "localhost",
		Port:            8080,
		Timeout:         10 * time.Second,
		EnableMetrics:   true,
		EnableCORS:      true,
		MaxBodyBytes:    1 << 20,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// metrics tracks evaluation activity for the Prometheus endpoint.
type metrics struct {
	evaluationsTotal   prometheus.Counter
	evaluationDuration prometheus.HistogramVec
	evaluationStatus   prometheus.CounterVec
}

func newMetrics(registerer prometheus.Registerer) *metrics {
	m := &metrics{
		evaluationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "termynus_evaluations_total",
			Help: "Total number of expression evaluations requested",
		}),
		evaluationDuration: *prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "termynus_evaluation_duration_seconds",
			Help: "Expression evaluation duration in seconds",
		}, []string{"status"}),
		evaluationStatus: *prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "termynus_evaluation_status_total",
			Help: "Total evaluations by outcome",
		}, []string{"status"}),
	}

	if registerer != nil {
		registerer.MustRegister(m.evaluationsTotal)
		registerer.MustRegister(m.evaluationDuration)
		registerer.MustRegister(m.evaluationStatus)
	}

	return m
}

func (m *metrics) observe(status string, elapsed time.Duration) {
	m.evaluationsTotal.Inc()
	m.evaluationDuration.WithLabelValues(status).Observe(elapsed.Seconds())
	m.evaluationStatus.WithLabelValues(status).Inc()
}

// Server represents the Termynus HTTP server
type Server struct {
	config  *Config
	metrics *metrics
	server  *http.Server
}

// New creates a new Termynus server
func New(config *Config) (*Server, error) {
	return NewWithRegistry(config, prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a server whose metrics register against the given
// registerer. Tests pass a private registry to avoid duplicate registration.
func NewWithRegistry(config *Config, registerer prometheus.Registerer) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}

	return &Server{
		config:  config,
		metrics: newMetrics(registerer),
	}, nil
}

// Router builds the HTTP routing table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	if s.config.EnableCORS {
		router.Use(s.corsMiddleware)
	}

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.loggingMiddleware)

	api.HandleFunc("/evaluate", s.evaluateExpression).Methods("POST")
	api.HandleFunc("/parse", s.parseExpression).Methods("POST")
	api.HandleFunc("/render", s.renderTemplate).Methods("POST")
	api.HandleFunc("/functions", s.listFunctions).Methods("GET")

	if s.config.EnableCORS {
		api.Methods("OPTIONS").HandlerFunc(s.handleOptions)
	}

	if s.config.EnableMetrics {
		router.Handle("/metrics", promhttp.Handler())
	}

	router.HandleFunc("/health", s.healthCheck)

	return router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	log.Info().
		Str("addr", addr).
		Bool("metrics", s.config.EnableMetrics).
		Msg("Starting Termynus server")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	return nil
}

// Stop stops the HTTP server gracefully
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	log.Info().Msg("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// StartWithGracefulShutdown starts the server and handles graceful shutdown
func (s *Server) StartWithGracefulShutdown() error {
	if err := s.Start(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer shutdownCancel()

		if err := s.Stop(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server shutdown error")
		}

		cancel()
	}()

	<-ctx.Done()
	log.Info().Msg("Server shutdown complete")
	return nil
}

// GetAddr returns the server address
func (s *Server) GetAddr() string {
	if s.server != nil && s.config.Port == 0 {
		return s.server.Addr
	}
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// handleOptions handles CORS preflight requests
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	// CORS headers are already set by middleware
	w.WriteHeader(http.StatusOK)
}
