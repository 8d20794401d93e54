package main

import (
	"flag"
	"log/slog"
	"os"

	"marketstudy/internal/app"
	"marketstudy/internal/infrastructure"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (defaults to ./config.yaml or ./configs/config.yaml)")
	flag.Parse()

	// GetLogger falls back to slog.Default until the application has set up
	// its own logger.
	application, err := app.NewApplication(*configPath)
	if err != nil {
		infrastructure.GetLogger().Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		infrastructure.GetLogger().Error("Application error", slog.String("error", err.Error()))
		_ = infrastructure.CloseLogFile()
		os.Exit(1)
	}
}
