// Package server exposes the analyzer over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aristath/taskrank/internal/analysis"
	"github.com/aristath/taskrank/internal/logging"
)

const (
	maxBodySize     = 1 << 20 // 1MB
	shutdownTimeout = 5 * time.Second
)

// Server is the taskrank HTTP API.
type Server struct {
	analyzer *analysis.Analyzer
	router   *gin.Engine
	logger   *slog.Logger
}

// New creates a server backed by analyzer.
func New(analyzer *analysis.Analyzer, logger *slog.Logger) *Server {
	router := gin.New()

	s := &Server{
		analyzer: analyzer,
		router:   router,
		logger:   logging.OrDiscard(logger),
	}

	router.Use(gin.Recovery(), s.requestLogger(), limitBody(maxBodySize))

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api/tasks")
	{
		api.POST("/analyze", s.handleAnalyze)
		api.POST("/suggest", s.handleSuggest)
		api.GET("/suggest", s.handleSuggest)
		api.POST("/batch", s.handleBatch)
	}

	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
