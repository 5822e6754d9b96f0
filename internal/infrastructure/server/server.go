package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/vaultfs/vaultfs/internal/api/http"
	"github.com/vaultfs/vaultfs/internal/api/middleware"
	"github.com/vaultfs/vaultfs/internal/infrastructure/config"
	"github.com/vaultfs/vaultfs/internal/infrastructure/logging"
	"github.com/vaultfs/vaultfs/internal/infrastructure/monitoring"
	"github.com/vaultfs/vaultfs/internal/sandbox"
)

// Server wraps the HTTP server and dependencies.
type Server struct {
	router  *gin.Engine
	service *sandbox.Service
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// New creates a new server instance.
func New(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("initializing filesystem API server",
		zap.String("port", cfg.Server.Port),
		zap.String("base_dir", cfg.Sandbox.BaseDir),
	)

	metrics := monitoring.NewMetrics()

	service, err := sandbox.New(cfg.Sandbox.BaseDir, logger)
	if err != nil {
		return nil, err
	}
	if !service.Healthy() {
		logger.Warn("base directory missing or not a directory",
			zap.String("base_dir", service.Root()),
		)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(service, logger, metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/debug/path", handlers.DebugPath)

	// File operations
	router.GET("/files", handlers.List)
	router.GET("/files/info", handlers.Describe)
	router.GET("/files/content", handlers.ReadContent)
	router.POST("/files/content", handlers.WriteContent)
	router.POST("/files/upload", handlers.Upload)
	router.DELETE("/files", handlers.Delete)
	router.POST("/files/copy", handlers.Copy)
	router.POST("/files/move", handlers.Move)

	// Directory creation
	router.POST("/directories", handlers.CreateDirectory)

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Info("server initialized successfully")

	return &Server{
		router:  router,
		service: service,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Router exposes the configured engine, for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Close flushes the logger.
func (s *Server) Close() error {
	s.logger.Info("shutting down server")
	return s.logger.Sync()
}
