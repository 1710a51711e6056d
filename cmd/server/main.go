package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ecosort/waste-api/internal/config"
	"github.com/ecosort/waste-api/internal/handlers"
	"github.com/ecosort/waste-api/internal/model"
	"github.com/ecosort/waste-api/internal/server"
	"github.com/ecosort/waste-api/internal/waste"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	modelPath, err := filepath.Abs(cfg.ModelPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve model path")
	}

	log.Info().Msgf("Loading model from: %s", modelPath)

	engine, err := model.New(modelPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize model engine")
	}
	defer engine.Close()

	handler := handlers.New(handlers.Dependencies{
		Engine:    engine,
		StaticDir: cfg.StaticDir,
	})

	app := server.New(cfg, handler)

	log.Info().Msgf("Server starting on %s", cfg.Address)
	log.Info().Msgf("Classes: %v", waste.Labels)

	if err := app.Listen(cfg.Address); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
