package main

import (
	"os"

	"github.com/nexusai/nexus-backend/internal/pkg/logger"
	"github.com/nexusai/nexus-backend/internal/server"
)

func main() {
	// NewServer orchestrates config/logger setup, store election, dependency
	// wiring and routing
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
