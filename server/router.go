// Package server exposes the engine over HTTP: a stateless recommendation
// endpoint and human-versus-engine game sessions.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kz4killua/chess-ai/config"
	"github.com/kz4killua/chess-ai/engine"
)

// Server holds what the handlers share. Each search builds its own engine.
type Server struct {
	cfg        config.EngineConfig
	games      *Manager
	logger     zerolog.Logger
	engineOpts []engine.Option
}

func New(cfg config.EngineConfig, logger zerolog.Logger, opts ...engine.Option) *Server {
	return &Server{cfg: cfg, games: NewManager(), logger: logger, engineOpts: opts}
}

// NewRouter builds the HTTP router.
func NewRouter(s *Server) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(s.logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/health", Health)

	api := router.Group("/api")
	api.POST("/recommend", s.Recommend)
	api.POST("/games", s.NewGame)
	api.GET("/games/:id", s.GetGame)
	api.POST("/games/:id/moves", s.PlayMove)

	return router
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("http-request")
	}
}
