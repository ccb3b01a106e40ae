// Package server exposes the pricing engine and the grid evaluator as a small
// JSON API for the dashboard.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contactkeval/option-pricer/internal/display"
	"github.com/contactkeval/option-pricer/internal/grid"
	"github.com/contactkeval/option-pricer/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// Config is the server configuration.
type Config struct {
	Addr         string
	Mode         string
	MaxCount     int
	DefaultCount int
	CallCost     float64
	PutCost      float64
	Workers      int
	Decimals     int
	Moneyness    display.Thresholds
}

// DefaultConfig matches the dashboard's defaults.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		Mode:         gin.ReleaseMode,
		MaxCount:     50,
		DefaultCount: grid.DefaultCount,
		CallCost:     10,
		PutCost:      10,
		Workers:      1,
		Decimals:     4,
		Moneyness:    display.DefaultThresholds,
	}
}

// Server routes dashboard requests to the engine.
type Server struct {
	cfg     Config
	router  *gin.Engine
	metrics *Metrics
}

// New builds the router. Mode is applied globally to gin.
func New(cfg Config) *Server {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	if cfg.DefaultCount <= 0 {
		cfg.DefaultCount = grid.DefaultCount
	}
	if cfg.MaxCount < cfg.DefaultCount {
		cfg.MaxCount = cfg.DefaultCount
	}

	s := &Server{cfg: cfg, router: gin.New(), metrics: NewMetrics()}
	s.router.Use(gin.Recovery(), requestLogger(), s.metrics.Middleware())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/health", s.health)
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := s.router.Group("/api/v1")
	{
		api.POST("/price", s.price)
		api.POST("/heatmap/price", s.priceHeatmap)
		api.POST("/heatmap/pnl", s.pnlHeatmap)
	}
}

// Handler returns the router, mainly for httptest.
func (s *Server) Handler() http.Handler { return s.router }

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("dashboard API listening on %s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Infof("shutting down dashboard API")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debugf("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
