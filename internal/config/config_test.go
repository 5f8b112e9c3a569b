package config

import "testing"

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"DATA_PATH", "TARGET_FIELD", "HTTP_PORT", "API_KEY", "LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT",
		"METRICS_ENABLED", "COMMENTARY_MODE", "OPENAI_API_KEY", "OPENAI_MODEL",
		"INFLATION_TARGET_LOW", "INFLATION_TARGET_HIGH", "LIQUIDITY_LOW", "LIQUIDITY_HIGH",
		"SSH_PORT", "SSH_HOST_KEY_PATH", "SSH_AUTHORIZED_KEYS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.DataPath != "data/final.csv" || cfg.TargetField != "BoZ_Policy_Rate" {
		t.Fatalf("unexpected data defaults: %+v", cfg)
	}
	if cfg.HTTPPort != 8080 || cfg.SSHPort != 23234 {
		t.Fatalf("unexpected port defaults: http=%d ssh=%d", cfg.HTTPPort, cfg.SSHPort)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" || cfg.LogOutput != "stderr" {
		t.Fatalf("unexpected log defaults: %+v", cfg)
	}
	if !cfg.MetricsEnabled {
		t.Fatal("metrics should default to enabled")
	}
	if cfg.CommentaryMode != "template" || cfg.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("unexpected commentary defaults: %+v", cfg)
	}
	if cfg.InflationTargetLow != 6 || cfg.InflationTargetHigh != 8 || cfg.LiquidityLow != 20 || cfg.LiquidityHigh != 50 {
		t.Fatalf("unexpected band defaults: %+v", cfg)
	}
	if cfg.SSHHostKeyPath != ".ssh/ratecast_ed25519" || cfg.SSHAuthorizedKeys != ".ssh/authorized_keys" {
		t.Fatalf("unexpected ssh defaults: %+v", cfg)
	}
}

func TestLoadWithEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_PATH", "/srv/boz.csv")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_FORMAT", "CONSOLE")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("COMMENTARY_MODE", "llm")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("INFLATION_TARGET_LOW", "3")
	t.Setenv("INFLATION_TARGET_HIGH", "5.5")

	cfg := Load()
	if cfg.DataPath != "/srv/boz.csv" || cfg.HTTPPort != 9000 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.LogFormat != "console" || cfg.MetricsEnabled {
		t.Fatalf("unexpected log/metrics config: %+v", cfg)
	}
	if cfg.CommentaryMode != "llm" {
		t.Fatalf("expected llm commentary, got %s", cfg.CommentaryMode)
	}
	if cfg.InflationTargetLow != 3 || cfg.InflationTargetHigh != 5.5 {
		t.Fatalf("unexpected inflation band: %v-%v", cfg.InflationTargetLow, cfg.InflationTargetHigh)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "bad")
	t.Setenv("LOG_FORMAT", "xml")
	t.Setenv("COMMENTARY_MODE", "poetry")
	t.Setenv("LIQUIDITY_LOW", "60")
	t.Setenv("LIQUIDITY_HIGH", "40")
	t.Setenv("INFLATION_TARGET_HIGH", "abc")

	cfg := Load()
	if cfg.HTTPPort != 8080 {
		t.Fatalf("invalid port should fall back to default, got %d", cfg.HTTPPort)
	}
	if cfg.LogFormat != "json" || cfg.CommentaryMode != "template" {
		t.Fatalf("invalid enums should fall back: %+v", cfg)
	}
	if cfg.LiquidityLow != 20 || cfg.LiquidityHigh != 50 {
		t.Fatalf("inverted band should fall back, got %v-%v", cfg.LiquidityLow, cfg.LiquidityHigh)
	}
	if cfg.InflationTargetHigh != 8 {
		t.Fatalf("unparsable value should fall back, got %v", cfg.InflationTargetHigh)
	}
}

func TestLoadLLMWithoutKeyUsesTemplate(t *testing.T) {
	clearEnv(t)
	t.Setenv("COMMENTARY_MODE", "llm")

	if cfg := Load(); cfg.CommentaryMode != "template" {
		t.Fatalf("expected template fallback without api key, got %s", cfg.CommentaryMode)
	}
}
