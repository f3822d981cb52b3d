package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ctd-ild-mcp-server/internal/api"
	"github.com/ctd-ild-mcp-server/internal/config"
	"github.com/ctd-ild-mcp-server/internal/logging"
	"github.com/ctd-ild-mcp-server/internal/narrative"
	"github.com/ctd-ild-mcp-server/internal/service"
)

func main() {
	bootstrap := logging.New("info", "json")

	if err := config.LoadDotEnv(); err != nil {
		bootstrap.WithError(err).Fatal("Failed to load .env file")
	}

	// Load configuration
	configManager, err := config.NewManagerWithFile(os.Getenv(config.EnvPrefix + "_CONFIG_FILE"))
	if err != nil {
		bootstrap.WithError(err).Fatal("Failed to load configuration")
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		bootstrap.WithError(err).Fatal("Configuration validation failed")
	}

	cfg := configManager.GetConfig()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	engine := service.NewRecommendationEngine(logger, nil)

	var dispatcher *narrative.Dispatcher
	if cfg.Narrative.Enabled {
		client := narrative.NewClient(cfg.Narrative, logger)
		dispatcher = narrative.NewDispatcher(client, logger, 2*cfg.Narrative.Timeout)
	}

	logger.WithFields(logrus.Fields{
		"host":        cfg.Server.Host,
		"port":        cfg.Server.Port,
		"environment": cfg.Environment,
		"narrative":   cfg.Narrative.Enabled,
	}).Info("Starting CTD-ILD HTTP server")

	server := api.NewServer(configManager, engine, engine.KnowledgeBase(), dispatcher, logger)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}

	logger.Info("Server stopped")
}
