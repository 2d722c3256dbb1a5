package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"marketplace-bidding-service/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Server struct {
	httpServer *http.Server
	config     config.ServerConfig
	logger     zerolog.Logger
}

type ServerParams struct {
	Config config.ServerConfig
	Router *gin.Engine
	Logger zerolog.Logger
}

func NewServer(params ServerParams) *Server {
	httpServer := &http.Server{
		Addr:         params.Config.Address(),
		Handler:      params.Router,
		ReadTimeout:  params.Config.ReadTimeout,
		WriteTimeout: params.Config.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		config:     params.Config,
		logger:     params.Logger.With().Str("component", "http_server").Logger(),
	}
}

// Start serves HTTP until Stop is called
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info().Msg("Stopping HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}
