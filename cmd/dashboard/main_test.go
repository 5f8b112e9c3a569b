package main

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"ratecast/internal/config"
	"ratecast/internal/tui"
	"ratecast/pkg/logger"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func TestMainRunsDashboard(t *testing.T) {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origNewLogger := newLoggerFunc
	origInitTracer := initTracerFunc
	origRun := runProgramFunc
	defer func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		newLoggerFunc = origNewLogger
		initTracerFunc = origInitTracer
		runProgramFunc = origRun
	}()

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{
			DataPath:       filepath.Join(t.TempDir(), "final.csv"),
			TargetField:    "BoZ_Policy_Rate",
			CommentaryMode: "template",
			LogOutput:      "stderr",
		}
	}
	var gotOutput string
	newLoggerFunc = func(cfg logger.Config) (zerolog.Logger, io.Closer, error) {
		gotOutput = cfg.Output
		return zerolog.Nop(), nopCloser{}, nil
	}
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	var ran tea.Model
	runProgramFunc = func(m tea.Model) error {
		ran = m
		return nil
	}

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}

	if gotOutput != dashboardLogFile {
		t.Fatalf("expected logs redirected to %s, got %q", dashboardLogFile, gotOutput)
	}
	if _, ok := ran.(*tui.Model); !ok {
		t.Fatalf("expected tui model to run, got %T", ran)
	}
}
