package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// DefaultDataPath is the sample table shipped at the repository root,
// relative to the working directory.
const DefaultDataPath = "data/final.csv"

type Config struct {
	DataPath    string
	TargetField string

	HTTPPort int
	APIKey   string

	LogLevel  string
	LogFormat string
	LogOutput string

	MetricsEnabled bool

	CommentaryMode string
	OpenAIAPIKey   string
	OpenAIModel    string

	InflationTargetLow  float64
	InflationTargetHigh float64
	LiquidityLow        float64
	LiquidityHigh       float64

	SSHPort           int
	SSHHostKeyPath    string
	SSHAuthorizedKeys string
}

func Load() *Config {
	cfg := &Config{
		DataPath:    strings.TrimSpace(os.Getenv("DATA_PATH")),
		TargetField: strings.TrimSpace(os.Getenv("TARGET_FIELD")),
		APIKey:      os.Getenv("API_KEY"),
	}

	if cfg.DataPath == "" {
		cfg.DataPath = DefaultDataPath
	}
	if cfg.TargetField == "" {
		cfg.TargetField = "BoZ_Policy_Rate"
	}
	if cfg.APIKey == "" {
		log.Println("Warning: API_KEY not set, HTTP API is unauthenticated")
	}

	cfg.HTTPPort = 8080
	if v := strings.TrimSpace(os.Getenv("HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPPort = n
		}
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.LogFormat = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		log.Printf("Warning: unsupported LOG_FORMAT=%q, defaulting to json", cfg.LogFormat)
		cfg.LogFormat = "json"
	}

	cfg.LogOutput = strings.TrimSpace(os.Getenv("LOG_OUTPUT"))
	if cfg.LogOutput == "" {
		cfg.LogOutput = "stderr"
	}

	cfg.MetricsEnabled = !strings.EqualFold(strings.TrimSpace(os.Getenv("METRICS_ENABLED")), "false")

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	cfg.CommentaryMode = strings.ToLower(strings.TrimSpace(os.Getenv("COMMENTARY_MODE")))
	if cfg.CommentaryMode == "" {
		cfg.CommentaryMode = "template"
	}
	if cfg.CommentaryMode != "template" && cfg.CommentaryMode != "llm" {
		log.Printf("Warning: unsupported COMMENTARY_MODE=%q, defaulting to template", cfg.CommentaryMode)
		cfg.CommentaryMode = "template"
	}
	if cfg.CommentaryMode == "llm" && cfg.OpenAIAPIKey == "" {
		log.Println("Warning: COMMENTARY_MODE=llm but OPENAI_API_KEY not set, using template commentary")
		cfg.CommentaryMode = "template"
	}

	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	cfg.InflationTargetLow = floatEnv("INFLATION_TARGET_LOW", 6)
	cfg.InflationTargetHigh = floatEnv("INFLATION_TARGET_HIGH", 8)
	if cfg.InflationTargetHigh <= cfg.InflationTargetLow {
		log.Printf("Warning: inflation target band %.2f-%.2f is empty, defaulting to 6-8", cfg.InflationTargetLow, cfg.InflationTargetHigh)
		cfg.InflationTargetLow, cfg.InflationTargetHigh = 6, 8
	}

	cfg.LiquidityLow = floatEnv("LIQUIDITY_LOW", 20)
	cfg.LiquidityHigh = floatEnv("LIQUIDITY_HIGH", 50)
	if cfg.LiquidityHigh <= cfg.LiquidityLow {
		log.Printf("Warning: liquidity band %.2f-%.2f is empty, defaulting to 20-50", cfg.LiquidityLow, cfg.LiquidityHigh)
		cfg.LiquidityLow, cfg.LiquidityHigh = 20, 50
	}

	cfg.SSHPort = 23234
	if v := strings.TrimSpace(os.Getenv("SSH_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SSHPort = n
		}
	}

	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/ratecast_ed25519"
	}

	cfg.SSHAuthorizedKeys = strings.TrimSpace(os.Getenv("SSH_AUTHORIZED_KEYS"))
	if cfg.SSHAuthorizedKeys == "" {
		cfg.SSHAuthorizedKeys = ".ssh/authorized_keys"
	}

	return cfg
}

func floatEnv(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n < 0 {
		log.Printf("Warning: invalid %s=%q, defaulting to %g", key, v, def)
		return def
	}
	return n
}
