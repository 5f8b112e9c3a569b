package main

import (
	"context"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"ratecast/internal/app"
	"ratecast/internal/config"
	"ratecast/internal/tui"
	"ratecast/pkg/logger"
	"ratecast/pkg/tracing"
)

// Log lines written to the terminal would tear the alt-screen UI.
const dashboardLogFile = "ratecast-dashboard.log"

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	newLoggerFunc          = logger.New
	initTracerFunc         = tracing.InitTracer
	newForecastServiceFunc = app.NewForecastService
	runProgramFunc         = func(m tea.Model) error {
		_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	}
)

func main() {
	_ = loadEnvFunc()
	cfg := loadConfigFunc()

	output := cfg.LogOutput
	if output == "" || output == "stdout" || output == "stderr" {
		output = dashboardLogFile
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		logr.Fatal().Err(err).Msg("failed to initialize tracer")
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			logr.Error().Err(err).Msg("error shutting down tracer provider")
		}
	}()

	forecasts, err := newForecastServiceFunc(cfg, tracer, logr, nil)
	if err != nil {
		logr.Fatal().Err(err).Msg("failed to build forecast service")
	}

	model := tui.NewModel(ctx, forecasts)
	if u := os.Getenv("USER"); u != "" {
		model.SetUser(u)
	}

	logr.Info().Str("data", cfg.DataPath).Msg("dashboard starting")
	if err := runProgramFunc(model); err != nil {
		logr.Error().Err(err).Msg("dashboard exited with error")
		return
	}
	logr.Info().Msg("dashboard exited")
}
