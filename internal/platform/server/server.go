package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Router attaches a handler group's routes to the engine.
type Router interface {
	EnrichRoutes(r *gin.Engine)
}

// Server manages the HTTP listener lifecycle.
type Server struct {
	httpServer      *http.Server
	log             *logrus.Logger
	shutdownTimeout time.Duration
}

// New builds the gin engine, registers every router and wraps it in an
// http.Server listening on listenAddr.
func New(listenAddr string, shutdownTimeout time.Duration, log *logrus.Logger, routers ...Router) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log))

	for _, router := range routers {
		router.EnrichRoutes(engine)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:    listenAddr,
			Handler: engine,
		},
		log:             log,
		shutdownTimeout: shutdownTimeout,
	}
}

// Run starts the server and shuts it down gracefully once the context is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serve HTTP on %s: %w", s.httpServer.Addr, err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	return <-errCh
}

func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start).String(),
		}).Info("request handled")
	}
}
