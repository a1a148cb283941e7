// sandboxd runs the in-memory sandbox API that the rentbooks client can be
// pointed at during development. Nothing it stores survives a restart.
package main

import (
	"log/slog"
	"os"

	"github.com/rentbooks/rentbooks/internal/platform/config"
	"github.com/rentbooks/rentbooks/internal/sandbox"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r, err := sandbox.NewRouter(cfg, logger)
	if err != nil {
		logger.Error("Failed to build router", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Sandbox API starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
