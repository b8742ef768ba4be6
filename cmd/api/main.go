package main

import (
	"os"

	"github.com/yigit/gradebook/internal/pkg/logger" // Still needed for initial error logging
	"github.com/yigit/gradebook/internal/server"
)

// @title Gradebook API
// @version 1.0
// @description Users, courses, enrollments, assignments and grades

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Use the default logger setup by the logger package's init
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
