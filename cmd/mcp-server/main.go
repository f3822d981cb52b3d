// Package main is the MCP stdio entry point for the CTD-ILD decision-support server.
// Configuration comes from CTD_ILD_* environment variables and an optional .env file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ctd-ild-mcp-server/internal/config"
	"github.com/ctd-ild-mcp-server/internal/domain"
	"github.com/ctd-ild-mcp-server/internal/logging"
	"github.com/ctd-ild-mcp-server/internal/mcp"
	"github.com/ctd-ild-mcp-server/internal/narrative"
	"github.com/ctd-ild-mcp-server/internal/service"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg := config.LoadLiteConfig()

	// Logs go to stderr so stdout stays reserved for the protocol stream.
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	engine := service.NewRecommendationEngine(logger, nil)

	var generator domain.NarrativeGenerator
	if narrativeCfg := cfg.Narrative(); narrativeCfg.Enabled {
		generator = narrative.NewClient(narrativeCfg, logger)
	}

	server, err := mcp.NewServer(cfg, engine, engine.KnowledgeBase(), generator, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create MCP server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil && ctx.Err() == nil {
		logger.WithError(err).Fatal("MCP server failed")
	}

	logger.Info("CTD-ILD MCP server stopped")
}
