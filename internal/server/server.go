package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/alchemorsel-pantry/backend/config"
	"github.com/pageza/alchemorsel-pantry/backend/internal/api"
	"github.com/pageza/alchemorsel-pantry/backend/internal/logging"
	"github.com/pageza/alchemorsel-pantry/backend/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *slog.Logger
}

// New creates a server with all routes registered on a fresh gin engine.
func New(cfg *config.Config, deps api.Dependencies) *Server {
	gin.SetMode(config.GinMode())

	router := gin.New()
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(logging.RequestLogger(deps.Logger))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	api.RegisterRoutes(router, deps)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			// Generation waits on the model, so writes get the LLM budget plus slack.
			WriteTimeout:      cfg.LLMTimeout + 30*time.Second,
		},
		logger: deps.Logger,
	}
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the server is shut down. It returns nil after a
// graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("server listening", slog.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
