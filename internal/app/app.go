package app

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"ratecast/internal/commentary"
	"ratecast/internal/config"
	"ratecast/internal/dataset"
	"ratecast/internal/ml/bank"
	"ratecast/internal/ml/inference"
	"ratecast/internal/ml/training"
	"ratecast/internal/service"
)

// Recorder is satisfied by pkg/metrics.Recorder.
type Recorder interface {
	training.Recorder
	service.Recorder
}

var newLLMClient = commentary.NewOpenAIClient

// NewForecastService wires the dataset source, model bank, training
// pipeline, inference engine and narrator described by cfg. A nil recorder
// disables metrics.
func NewForecastService(cfg *config.Config, tracer trace.Tracer, logger zerolog.Logger, recorder Recorder) (*service.ForecastService, error) {
	pipeline, err := training.NewPipeline(tracer, logger, bank.Default(), training.Config{Target: cfg.TargetField})
	if err != nil {
		return nil, err
	}
	svc := service.NewForecastService(
		tracer,
		logger,
		dataset.NewCSVSource(cfg.DataPath, logger),
		pipeline,
		inference.NewEngine(tracer),
		NewNarrator(cfg, tracer, logger),
	)
	if recorder != nil {
		pipeline.SetRecorder(recorder)
		svc.SetRecorder(recorder)
	}
	return svc, nil
}

// NewNarrator returns the template narrator, or an LLM narrator falling back
// to it when COMMENTARY_MODE=llm.
func NewNarrator(cfg *config.Config, tracer trace.Tracer, logger zerolog.Logger) commentary.Narrator {
	bands := commentary.Bands{
		InflationLow:  cfg.InflationTargetLow,
		InflationHigh: cfg.InflationTargetHigh,
		LiquidityLow:  cfg.LiquidityLow,
		LiquidityHigh: cfg.LiquidityHigh,
	}
	template := commentary.NewTemplateNarrator(bands)
	if cfg.CommentaryMode != "llm" || cfg.OpenAIAPIKey == "" {
		return template
	}
	llm := commentary.NewLLMNarrator(tracer, logger, newLLMClient(cfg.OpenAIAPIKey), cfg.OpenAIModel, template.Bands())
	llm.SetFallback(template)
	logger.Info().Str("model", cfg.OpenAIModel).Msg("llm commentary enabled")
	return llm
}
