package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"ratecast/internal/app"
	"ratecast/internal/config"
	"ratecast/internal/mcptools"
	"ratecast/pkg/logger"
	"ratecast/pkg/tracing"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	newLoggerFunc          = logger.New
	initTracerFunc         = tracing.InitTracer
	newForecastServiceFunc = app.NewForecastService
	runServerFunc          = func(ctx context.Context, server *mcp.Server) error {
		return server.Run(ctx, &mcp.StdioTransport{})
	}
)

func main() {
	_ = loadEnvFunc()
	cfg := loadConfigFunc()

	// stdout carries the protocol.
	output := cfg.LogOutput
	if output == "" || output == "stdout" {
		output = "stderr"
	}
	logr, closer, err := newLoggerFunc(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: output,
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		logr.Fatal().Err(err).Msg("failed to initialize tracer")
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logr.Error().Err(err).Msg("error shutting down tracer provider")
		}
	}()

	forecasts, err := newForecastServiceFunc(cfg, tracer, logr, nil)
	if err != nil {
		logr.Fatal().Err(err).Msg("failed to build forecast service")
	}

	server := mcptools.NewServer(tracer, logr, forecasts, tracing.ServiceVersion)

	logr.Info().Str("data", cfg.DataPath).Msg("mcp server serving on stdio")
	if err := runServerFunc(ctx, server); err != nil && ctx.Err() == nil {
		logr.Error().Err(err).Msg("mcp server stopped")
		return
	}
	logr.Info().Msg("mcp server exited")
}
