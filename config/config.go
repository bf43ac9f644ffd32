// Package config loads runtime settings from the environment (and a .env file
// when present) and configures logging.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Addr   string
	Logs   LogConfig
	Engine EngineConfig
}

type LogConfig struct {
	Style string // "console" for human-readable output, otherwise JSON
	Level string
}

type EngineConfig struct {
	Depth       int  // default search depth in plies
	MaxDepth    int  // largest depth a request may ask for
	EngineWhite bool // engine side in new games
}

const (
	defaultAddr     = "0.0.0.0:8080"
	defaultDepth    = 2
	defaultMaxDepth = 6
)

// LoadConfig reads CHESSAI_* and LOG_* variables, applying defaults for
// anything unset.
func LoadConfig() (*Config, error) {
	depth, err := intEnv("CHESSAI_DEPTH", defaultDepth)
	if err != nil {
		return nil, err
	}
	maxDepth, err := intEnv("CHESSAI_MAX_DEPTH", defaultMaxDepth)
	if err != nil {
		return nil, err
	}
	if depth < 0 || maxDepth < 0 {
		return nil, fmt.Errorf("config: depths must not be negative (depth %d, max %d)", depth, maxDepth)
	}
	if depth > maxDepth {
		return nil, fmt.Errorf("config: CHESSAI_DEPTH %d exceeds CHESSAI_MAX_DEPTH %d", depth, maxDepth)
	}

	engineWhite := false
	switch color := strings.ToLower(os.Getenv("CHESSAI_ENGINE_COLOR")); color {
	case "", "black":
	case "white":
		engineWhite = true
	default:
		return nil, fmt.Errorf("config: CHESSAI_ENGINE_COLOR must be white or black, got %q", color)
	}

	addr := os.Getenv("CHESSAI_ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	cfg := &Config{
		Addr: addr,
		Logs: LogConfig{
			Style: os.Getenv("LOG_STYLE"),
			Level: os.Getenv("LOG_LEVEL"),
		},
		Engine: EngineConfig{
			Depth:       depth,
			MaxDepth:    maxDepth,
			EngineWhite: engineWhite,
		},
	}
	return cfg, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: converting %s: %w", key, err)
	}
	return v, nil
}
