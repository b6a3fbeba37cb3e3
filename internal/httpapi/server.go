// Package httpapi serves the paged HR lists over HTTP with gin.
//
//	GET /api/employees?page=2&pageSize=25&department=engineering,finance&sort=hired&desc=true
//	GET /api/expenses?employee=<id>&status=pending
//
// Query strings use the same encoding as the list URL state, so a browser
// URL and an API URL for the same view are interchangeable.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nrfta/listview-go"
	"github.com/nrfta/listview-go/internal/hr"
	"github.com/nrfta/listview-go/window"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Config holds the dependencies of a Server.
type Config struct {
	Mode       string
	Logger     *zap.Logger
	Repository *hr.Repository
	PageConfig *listview.PageConfig
	Radius     int
	DB         Pinger
}

// Server is the HR list API.
type Server struct {
	engine *gin.Engine
	logger *zap.Logger
	db     Pinger
	window window.Calculator
}

// New builds the gin engine and registers every route.
func New(cfg Config) *Server {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.PageConfig == nil {
		cfg.PageConfig = listview.NewPageConfig()
	}

	s := &Server{
		engine: gin.New(),
		logger: cfg.Logger,
		db:     cfg.DB,
		window: window.Calculator{Radius: cfg.Radius, Mode: window.ModeClamp},
	}

	s.engine.Use(gin.Recovery(), s.requestLogger(), observeRequests())

	s.engine.GET("/health", s.health)
	s.engine.GET("/ready", s.ready)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	{
		api.GET("/employees", listHandler(s, cfg.Repository.EmployeeList(cfg.PageConfig), toEmployeeDTO))
		api.GET("/employees/:id", s.getEmployee(cfg.Repository))
		api.GET("/expenses", listHandler(s, cfg.Repository.ExpenseList(cfg.PageConfig), toExpenseDTO))
	}

	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ready(c *gin.Context) {
	if s.db != nil {
		if err := s.db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
