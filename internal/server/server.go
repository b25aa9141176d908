// Package server exposes a dummy database over HTTP with the task wire
// protocol, for running the client against a real transport.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/nibzard/choretracker-go/internal/api"
	"github.com/nibzard/choretracker-go/internal/dummy"
	"github.com/nibzard/choretracker-go/internal/logging"
)

// DefaultBasePath is the route group for the API.
const DefaultBasePath = "/apis"

// Options configures a Server.
type Options struct {
	BasePath string
	Logger   *log.Logger
}

// Server is the demo task backend.
type Server struct {
	db     *dummy.Database
	router *gin.Engine
	logger *log.Logger
}

// New creates a server over db.
func New(db *dummy.Database, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	base := strings.TrimSuffix(opts.BasePath, "/")
	if base == "" {
		base = DefaultBasePath
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	s := &Server{
		db:     db,
		router: router,
		logger: opts.Logger,
	}
	router.Use(gin.Recovery(), s.logRequests)

	tasks := router.Group(base + "/" + api.TasksResource)
	{
		tasks.GET("", s.handleList)
		tasks.POST("", s.handleCreate)
		tasks.GET("/:id", s.handleGet)
		tasks.PUT("/:id", s.handleUpdate)
		tasks.DELETE("/:id", s.handleDelete)
	}

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("http",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"request_id", c.GetHeader(api.RequestIDHeader),
		"duration", time.Since(start).Round(time.Microsecond),
	)
}
