package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	gossh "golang.org/x/crypto/ssh"

	"ratecast/internal/config"
	"ratecast/pkg/logger"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func TestMainBootstrap(t *testing.T) {
	restore := stubSSHDeps(t)
	defer restore()

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
}

func newPublicKey(t *testing.T) gossh.PublicKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	key, err := gossh.NewPublicKey(pub)
	if err != nil {
		t.Fatalf("wrap key: %v", err)
	}
	return key
}

func TestLoadAuthorizedKeys(t *testing.T) {
	known := newPublicKey(t)
	stranger := newPublicKey(t)

	contents := "# operators\n\n" + string(gossh.MarshalAuthorizedKey(known))
	path := filepath.Join(t.TempDir(), "authorized_keys")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write keys: %v", err)
	}

	ak, err := loadAuthorizedKeys(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ak.Len() != 1 {
		t.Fatalf("expected one key, got %d", ak.Len())
	}
	if !ak.Allows(known) {
		t.Fatal("expected listed key to be allowed")
	}
	if ak.Allows(stranger) {
		t.Fatal("expected unlisted key to be denied")
	}
}

func TestLoadAuthorizedKeysErrors(t *testing.T) {
	if _, err := loadAuthorizedKeys(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "authorized_keys")
	if err := os.WriteFile(path, []byte("ssh-ed25519 not-base64!!\n"), 0o600); err != nil {
		t.Fatalf("write keys: %v", err)
	}
	if _, err := loadAuthorizedKeys(path); err == nil {
		t.Fatal("expected parse error")
	}

	var none *authorizedKeys
	if none.Allows(newPublicKey(t)) || none.Len() != 0 {
		t.Fatal("expected nil allowlist to deny everything")
	}
}

func stubSSHDeps(t *testing.T) func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origNewLogger := newLoggerFunc
	origInitTracer := initTracerFunc
	origLoadKeys := loadAuthorizedKeysFunc
	origNewWishServer := newWishServerFunc
	origSetupSignal := setupSignalNotify
	origWait := waitForSignalFunc

	dir := t.TempDir()
	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{
			DataPath:          filepath.Join(dir, "final.csv"),
			TargetField:       "BoZ_Policy_Rate",
			CommentaryMode:    "template",
			SSHPort:           2222,
			SSHHostKeyPath:    filepath.Join(dir, "host_key"),
			SSHAuthorizedKeys: filepath.Join(dir, "authorized_keys"),
		}
	}
	newLoggerFunc = func(logger.Config) (zerolog.Logger, io.Closer, error) {
		return zerolog.Nop(), nopCloser{}, nil
	}
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	loadAuthorizedKeysFunc = func(string) (*authorizedKeys, error) {
		return &authorizedKeys{}, nil
	}
	newWishServerFunc = func(ops ...ssh.Option) (*ssh.Server, error) {
		if len(ops) == 0 {
			t.Error("expected wish options")
		}
		return nil, nil
	}
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		newLoggerFunc = origNewLogger
		initTracerFunc = origInitTracer
		loadAuthorizedKeysFunc = origLoadKeys
		newWishServerFunc = origNewWishServer
		setupSignalNotify = origSetupSignal
		waitForSignalFunc = origWait
	}
}
