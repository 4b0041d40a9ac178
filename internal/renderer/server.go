package renderer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/omega/animator/internal/render"
	"go.uber.org/zap"
)

var Provider = wire.NewSet(NewExecCommand, NewExecutor, NewServer)

const Banner = "Manim Executor Service"

type ServerConfig struct {
	Port        int
	ExecutePath string
}

// Server exposes an Executor over HTTP.
type Server struct {
	cfg      ServerConfig
	router   *gin.Engine
	executor *Executor
	logger   *zap.Logger
	srv      *http.Server
}

func NewServer(cfg ServerConfig, executor *Executor, logger *zap.Logger) *Server {
	if cfg.ExecutePath == "" {
		cfg.ExecutePath = "/execute-manim"
	}
	s := &Server{cfg: cfg, executor: executor, logger: logger.Named("renderer_server")}

	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, Banner)
	})
	s.router.POST(cfg.ExecutePath, s.execute)
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.router,
	}
	return s
}

func (s *Server) execute(c *gin.Context) {
	var req render.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, render.Response{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	status, resp := s.executor.Execute(c.Request.Context(), req)
	c.JSON(status, resp)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("render executor listening", zap.Int("port", s.cfg.Port))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
