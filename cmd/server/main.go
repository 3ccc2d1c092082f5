package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Column-org/Column-backend/internal/config"
	"github.com/Column-org/Column-backend/internal/handlers"
	"github.com/Column-org/Column-backend/internal/middleware"
	"github.com/Column-org/Column-backend/internal/models"
	"github.com/Column-org/Column-backend/internal/services"
	"github.com/Column-org/Column-backend/pkg/logger"
	"github.com/Column-org/Column-backend/pkg/metrics"
	"github.com/Column-org/Column-backend/pkg/ratelimiter"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Server holds the application state and long-lived services
type Server struct {
	config         *config.Config
	log            *logger.Logger
	metrics        *metrics.MetricsCollector
	clients        *services.ClientPool
	accountService *services.AccountService
	emailLimiter   *ratelimiter.RateLimiter
	router         *handlers.Router
	httpServer     *http.Server
	stopCleanup    chan struct{}
}

// NewServer wires configuration, services and handlers together
func NewServer(cfg *config.Config) *Server {
	log := logger.GetLogger()
	collector := metrics.NewMetricsCollector()

	clients := services.NewClientPool(cfg.Networks, services.NewChainClient)

	txService := services.NewTransactionService(clients, cfg.Networks)
	accountService := services.NewAccountService(clients, cfg.Networks, cfg.Cache, collector)
	faucetService := services.NewFaucetService(cfg.Networks)
	transferService := services.NewTransferService(clients, cfg.Networks, cfg.Transfer)
	emailService := services.NewEmailService(cfg.Email)

	emailLimiter := ratelimiter.New(cfg.RateLimit.RequestsPerWindow, cfg.RateLimit.WindowSize)

	router := handlers.NewRouter(
		txService,
		accountService,
		faucetService,
		transferService,
		emailService,
		emailLimiter,
	)

	return &Server{
		config:         cfg,
		log:            log,
		metrics:        collector,
		clients:        clients,
		accountService: accountService,
		emailLimiter:   emailLimiter,
		router:         router,
		stopCleanup:    make(chan struct{}),
	}
}

// Handler builds the Gin engine with all middleware and routes.
// Split from Start so integration tests can drive the engine directly.
func (s *Server) Handler() *gin.Engine {
	if s.config.Logging.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(logger.RecoveryMiddleware())
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.PerformanceMiddleware(s.metrics))
	engine.Use(middleware.RequestSizeMiddleware())
	engine.Use(corsMiddleware())

	s.router.SetupRoutes(engine)

	engine.GET("/metrics", middleware.MetricsMiddleware(s.metrics))
	engine.GET("/status", s.statusHandler)

	return engine
}

// statusHandler reports process health plus default-network node reachability
func (s *Server) statusHandler(c *gin.Context) {
	chainStatus := "ok"
	if client, err := s.clients.Get(s.config.Networks.Default); err != nil {
		chainStatus = "unavailable"
	} else if err := client.Healthy(); err != nil {
		chainStatus = "unreachable"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"default_network": s.config.Networks.Default,
		"chain":           chainStatus,
		"uptime":          s.metrics.GetUptime().String(),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

// Start runs the HTTP server until a shutdown signal arrives
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.config.Server.Host + ":" + s.config.Server.Port,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	go s.cleanupLoop()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting server",
			zap.String("addr", s.httpServer.Addr),
			zap.String("default_network", string(s.config.Networks.Default)),
		)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		s.log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	s.stop()
	return nil
}

// cleanupLoop periodically evicts expired rate limiter entries
func (s *Server) cleanupLoop() {
	ticker := time.NewTicker(s.config.RateLimit.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.emailLimiter.Cleanup()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *Server) stop() {
	close(s.stopCleanup)
	s.accountService.Stop()
	_ = s.log.Sync()
}

// corsMiddleware allows cross-origin calls from the web frontend
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Correlation-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func main() {
	// Best effort: the process still runs on plain environment variables
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	if err := logger.Initialize(&logger.Config{
		Level:       cfg.Logging.Level,
		Environment: cfg.Logging.Environment,
		OutputPaths: cfg.Logging.OutputPaths,
	}); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	models.SetProductionMode(cfg.Logging.IsProduction())

	server := NewServer(cfg)
	if err := server.Start(); err != nil {
		server.log.Fatal("server error", zap.Error(err))
	}
}
