package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/codequest/runbox/internal/config"
	"github.com/codequest/runbox/internal/executor"
	httphandlers "github.com/codequest/runbox/internal/http"
	"github.com/codequest/runbox/internal/monitoring"
)

const version = "0.3.0"

// Server wraps the HTTP router and its dependencies.
type Server struct {
	router   *gin.Engine
	executor *executor.Executor
	logger   *zap.Logger
}

// New builds the server: executor, metrics, middleware stack, routes.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	metrics := monitoring.NewMetrics()

	exec, err := executor.New(cfg.Executor.ToExecutor(), logger, metrics)
	if err != nil {
		return nil, err
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(monitoring.Middleware(metrics))
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Accept", "Origin", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))
	if cfg.RateLimit.Enabled {
		router.Use(rateLimitMiddleware(cfg.RateLimit))
	}

	handlers := httphandlers.NewHandlers(exec, version)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.POST("/execute", handlers.Execute)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &Server{
		router:   router,
		executor: exec,
		logger:   logger,
	}, nil
}

// Run starts the server and blocks.
func (s *Server) Run(addr string) error {
	s.logger.Info("starting execution service", zap.String("addr", addr), zap.String("version", version))
	return s.router.Run(addr)
}

// Router exposes the underlying router, for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Close flushes the logger.
func (s *Server) Close() error {
	return s.logger.Sync()
}
