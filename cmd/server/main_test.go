package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"ratecast/internal/app"
	"ratecast/internal/config"
	"ratecast/internal/service"
	"ratecast/pkg/logger"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func TestMainBootstrap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	restore := stubServerDeps(t)
	defer restore()

	type served struct {
		addr   string
		routes gin.RoutesInfo
	}
	servedCh := make(chan served, 1)
	startHTTPServerFunc = func(srv *http.Server) error {
		servedCh <- served{addr: srv.Addr, routes: srv.Handler.(*gin.Engine).Routes()}
		return http.ErrServerClosed
	}
	var got served
	waitForSignalFunc = func(<-chan os.Signal) {
		select {
		case got = <-servedCh:
		case <-time.After(time.Second):
		}
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

	addr, routes := got.addr, got.routes
	if addr != ":9090" {
		t.Fatalf("expected addr :9090, got %q", addr)
	}
	paths := map[string]bool{}
	for _, r := range routes {
		paths[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /health",
		"GET /metrics",
		"GET /swagger/*any",
		"GET /api/evaluation",
		"POST /api/forecast",
		"GET /api/variables/:name",
	} {
		if !paths[want] {
			t.Errorf("expected route %s to be registered", want)
		}
	}
}

func stubServerDeps(t *testing.T) func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origNewLogger := newLoggerFunc
	origInitTracer := initTracerFunc
	origNewRegistry := newRegistryFunc
	origNewForecastService := newForecastServiceFunc
	origNewRouter := newRouterFunc
	origSetupSignal := setupSignalNotify
	origWait := waitForSignalFunc
	origStartHTTP := startHTTPServerFunc
	origShutdownHTTP := shutdownHTTPServerFunc

	dataPath := filepath.Join(t.TempDir(), "final.csv")

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{
			DataPath:       dataPath,
			TargetField:    "BoZ_Policy_Rate",
			HTTPPort:       9090,
			MetricsEnabled: true,
			CommentaryMode: "template",
		}
	}
	newLoggerFunc = func(logger.Config) (zerolog.Logger, io.Closer, error) {
		return zerolog.Nop(), nopCloser{}, nil
	}
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	newRegistryFunc = prometheus.NewRegistry
	newForecastServiceFunc = func(cfg *config.Config, tracer trace.Tracer, logger zerolog.Logger, recorder app.Recorder) (*service.ForecastService, error) {
		if recorder == nil {
			t.Error("expected metrics recorder when metrics are enabled")
		}
		return app.NewForecastService(cfg, tracer, logger, recorder)
	}
	newRouterFunc = func(...gin.OptionFunc) *gin.Engine { return gin.New() }
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}
	startHTTPServerFunc = func(*http.Server) error { return http.ErrServerClosed }
	shutdownHTTPServerFunc = func(*http.Server, context.Context) error { return nil }

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		newLoggerFunc = origNewLogger
		initTracerFunc = origInitTracer
		newRegistryFunc = origNewRegistry
		newForecastServiceFunc = origNewForecastService
		newRouterFunc = origNewRouter
		setupSignalNotify = origSetupSignal
		waitForSignalFunc = origWait
		startHTTPServerFunc = origStartHTTP
		shutdownHTTPServerFunc = origShutdownHTTP
	}
}
