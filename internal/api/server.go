package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/omega/animator/internal/api/middleware"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxHeaderBytes int
	MediaRoot      string
}

type Server struct {
	cfg    ServerConfig
	router *gin.Engine
	srv    *http.Server
	logger *zap.Logger
}

func NewServer(
	cfg ServerConfig,
	scripts *ScriptHandler,
	providers *ProviderHandler,
	common *CommonHandler,
	media *MediaHandler,
	logger *zap.Logger,
) *Server {
	s := &Server{cfg: cfg, logger: logger.Named("api")}

	s.router = gin.New()
	s.router.Use(middleware.ErrorHandlingMiddleware(s.logger))
	s.router.Use(middleware.RequestLogger(s.logger))
	s.router.Use(middleware.Cors())

	s.router.GET("/", common.Root)
	s.router.GET("/health", common.HealthCheck)
	s.router.GET("/media/*path", media.Serve)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/scripts/generate", scripts.Generate)
		v1.GET("/scripts", scripts.List)
		v1.GET("/scripts/:id", scripts.Get)
		v1.POST("/scripts/:id/execute", scripts.Execute)
		v1.GET("/scripts/:id/executions", scripts.Executions)

		v1.GET("/providers", providers.List)
		v1.POST("/providers", providers.Create)
		v1.PUT("/providers/:id", providers.Update)
		v1.DELETE("/providers/:id", providers.Delete)
	}

	s.srv = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}
	return s
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("api server listening", zap.Int("port", s.cfg.Port))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
