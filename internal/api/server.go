// Package api builds the HTTP server around the gin engine.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultReadTimeout = 10 * time.Second
	// Batch runs hold the connection while prospects are processed
	// sequentially, so the write timeout must cover a full batch.
	defaultWriteTimeout    = 5 * time.Minute
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 5 * time.Second
)

// Server wraps the gin engine in an http.Server with sane timeouts.
type Server struct {
	engine *gin.Engine
	server *http.Server
	logger *zap.Logger
}

func NewServer(port string, logger *zap.Logger) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		engine: engine,
		server: &http.Server{
			Addr:         ":" + port,
			Handler:      engine,
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
			IdleTimeout:  defaultIdleTimeout,
		},
		logger: logger,
	}
}

// Engine exposes the router for route registration.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}
