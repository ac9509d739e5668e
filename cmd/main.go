package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"migration-service/internal/commands"
	"migration-service/internal/config"
)

func main() {
	// Initialize structured logger
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	app := &commands.App{Config: cfg, Log: log}
	rootCmd := commands.NewRootCommand(app)
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
