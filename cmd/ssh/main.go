package main

import (
	"context"
	"fmt"
	"log"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	gossh "golang.org/x/crypto/ssh"

	"ratecast/internal/app"
	"ratecast/internal/config"
	"ratecast/internal/tui"
	"ratecast/pkg/logger"
	"ratecast/pkg/tracing"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	newLoggerFunc          = logger.New
	initTracerFunc         = tracing.InitTracer
	loadAuthorizedKeysFunc = loadAuthorizedKeys
	newForecastServiceFunc = app.NewForecastService
	newWishServerFunc      = wish.NewServer
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
)

func main() {
	_ = loadEnvFunc()
	cfg := loadConfigFunc()

	logr, closer, err := newLoggerFunc(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		logr.Fatal().Err(err).Msg("failed to initialize tracer")
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			logr.Error().Err(err).Msg("error shutting down tracer provider")
		}
	}()

	allowed, err := loadAuthorizedKeysFunc(cfg.SSHAuthorizedKeys)
	if err != nil {
		logr.Warn().Err(err).Str("path", cfg.SSHAuthorizedKeys).Msg("no authorized keys loaded, all logins will be denied")
	} else {
		logr.Info().Int("keys", allowed.Len()).Msg("authorized keys loaded")
	}

	forecasts, err := newForecastServiceFunc(cfg, tracer, logr, nil)
	if err != nil {
		logr.Fatal().Err(err).Msg("failed to build forecast service")
	}

	// Build Wish SSH server
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.SSHPort)

	srv, err := newWishServerFunc(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			fingerprint := gossh.FingerprintSHA256(key)
			if !allowed.Allows(key) {
				logr.Warn().Str("user", ctx.User()).Str("fingerprint", fingerprint).Msg("ssh auth denied")
				return false
			}
			logr.Info().Str("user", ctx.User()).Str("fingerprint", fingerprint).Msg("ssh auth accepted")
			return true
		}),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				model := tui.NewModel(s.Context(), forecasts)
				pty, _, _ := s.Pty()
				model.SetSize(pty.Window.Width, pty.Window.Height)
				model.SetUser(s.User())
				return model, []tea.ProgramOption{tea.WithAltScreen()}
			}),
			logging.Middleware(),
		),
	)
	if err != nil {
		logr.Fatal().Err(err).Msg("failed to create SSH server")
	}

	if srv != nil {
		go func() {
			logr.Info().Str("addr", addr).Msg("ssh server listening")
			if err := srv.ListenAndServe(); err != nil && err != ssh.ErrServerClosed {
				logr.Error().Err(err).Msg("ssh server stopped")
			}
		}()
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	logr.Info().Msg("shutting down ssh server")

	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logr.Error().Err(err).Msg("ssh server shutdown error")
		}
	}

	logr.Info().Msg("ssh server exited")
}
