package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/kz4killua/chess-ai/config"
	"github.com/kz4killua/chess-ai/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("loading-config")
	}
	logger := config.SetupLogging(cfg.Logs, os.Stderr)

	router := server.NewRouter(server.New(cfg.Engine, logger))
	logger.Info().Str("addr", cfg.Addr).Int("depth", cfg.Engine.Depth).Msg("server-starting")
	if err := router.Run(cfg.Addr); err != nil {
		logger.Fatal().Err(err).Msg("server-stopped")
	}
}
