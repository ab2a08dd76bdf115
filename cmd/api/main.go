package main

import (
	"os"

	"github.com/coursehub/backend/internal/pkg/logger"
	"github.com/coursehub/backend/internal/server"
)

// @title CourseHub API
// @version 1.0
// @description API for the CourseHub course marketplace

// @contact.name API Support
// @contact.email support@coursehub.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Identity-provider bearer token

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize server")
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
