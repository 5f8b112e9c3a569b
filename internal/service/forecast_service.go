package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"ratecast/internal/commentary"
	"ratecast/internal/dataset"
	"ratecast/internal/domain"
	"ratecast/internal/ml/inference"
	"ratecast/internal/ml/training"
)

// Recorder counts what the service hands out and what goes wrong.
type Recorder interface {
	RecordSignal(model, signal string)
	RecordError(kind string)
}

type nopRecorder struct{}

func (nopRecorder) RecordSignal(string, string) {}
func (nopRecorder) RecordError(string)          {}

// ForecastService answers the dashboard's questions. Every call reloads the
// dataset and retrains the bank, so answers always reflect the source.
type ForecastService struct {
	tracer   trace.Tracer
	logger   zerolog.Logger
	source   dataset.Source
	pipeline *training.Pipeline
	engine   *inference.Engine
	narrator commentary.Narrator
	recorder Recorder
}

func NewForecastService(
	tracer trace.Tracer,
	logger zerolog.Logger,
	source dataset.Source,
	pipeline *training.Pipeline,
	engine *inference.Engine,
	narrator commentary.Narrator,
) *ForecastService {
	if narrator == nil {
		narrator = commentary.NewTemplateNarrator(commentary.DefaultBands())
	}
	return &ForecastService{
		tracer:   tracer,
		logger:   logger.With().Str("component", "forecast-service").Logger(),
		source:   source,
		pipeline: pipeline,
		engine:   engine,
		narrator: narrator,
		recorder: nopRecorder{},
	}
}

func (s *ForecastService) SetRecorder(r Recorder) {
	if r == nil {
		r = nopRecorder{}
	}
	s.recorder = r
}

// Evaluate trains every model in the bank and reports held-out scores.
func (s *ForecastService) Evaluate(ctx context.Context) (*EvaluationReport, error) {
	ctx, span := s.tracer.Start(ctx, "forecast-service.evaluate")
	defer span.End()

	ds, bundle, err := s.train(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, s.fail("evaluate", err)
	}

	report := &EvaluationReport{
		RunID:     bundle.RunID(),
		Target:    bundle.Target(),
		TrainedAt: bundle.TrainedAt(),
		Rows:      ds.Len(),
		Dropped:   ds.Dropped(),
		Split:     splitInfo(ds, bundle),
		Features:  bundle.FeatureNames(),
		Scores:    bundle.Scores(),
		Best:      bundle.Best(),
	}
	for _, name := range bundle.ModelNames() {
		model, err := bundle.Model(name)
		if err != nil {
			return nil, s.fail("evaluate", err)
		}
		series, err := bundle.Series(name)
		if err != nil {
			return nil, s.fail("evaluate", err)
		}
		report.Models = append(report.Models, ModelEvaluation{
			Model:       name,
			R2:          scoreOf(bundle, name),
			Hyperparams: model.Hyperparams(),
			Series:      series,
		})
	}
	span.SetAttributes(
		attribute.String("ml.run_id", report.RunID),
		attribute.String("ml.best_model", report.Best.Model),
	)
	return report, nil
}

// Forecast predicts the next policy rate for a scenario built from the
// latest observation with req.Overrides applied. An empty req.Model uses
// the best-scoring model of the run.
func (s *ForecastService) Forecast(ctx context.Context, req ForecastRequest) (*ForecastReport, error) {
	ctx, span := s.tracer.Start(ctx, "forecast-service.forecast")
	defer span.End()

	ds, bundle, err := s.train(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, s.fail("forecast", err)
	}

	latest := ds.Latest()
	scenario, err := applyOverrides(latest, req.Overrides)
	if err != nil {
		span.RecordError(err)
		return nil, s.fail("forecast", err)
	}

	best := bundle.Best()
	name := req.Model
	if name == "" {
		name = best.Model
	}
	span.SetAttributes(attribute.String("ml.model", name))

	record := scenario.Record()
	result, err := s.engine.ForecastNamed(ctx, bundle, name, record)
	if err != nil {
		span.RecordError(err)
		return nil, s.fail("forecast", err)
	}
	s.recorder.RecordSignal(result.Model, string(result.Signal))

	indicators, err := commentary.Indicators(record)
	if err != nil {
		return nil, s.fail("forecast", err)
	}
	text, err := s.narrator.Narrate(ctx, result.Forecast, result.Signal, record)
	if err != nil {
		span.RecordError(err)
		return nil, s.fail("forecast", err)
	}

	s.logger.Info().
		Str("run_id", result.RunID).
		Str("model", result.Model).
		Float64("forecast", result.Forecast).
		Float64("current_rate", result.CurrentRate).
		Str("signal", string(result.Signal)).
		Int("overrides", len(req.Overrides)).
		Msg("policy rate forecast")

	return &ForecastReport{
		Result:     result,
		BestModel:  best.Model,
		AsOf:       latest.Month,
		Scenario:   record,
		Overridden: overriddenNames(req.Overrides),
		Indicators: indicators,
		Commentary: text,
	}, nil
}

// Variables lists every series the dataset carries, in catalogue order.
func (s *ForecastService) Variables(ctx context.Context) ([]Variable, error) {
	_, span := s.tracer.Start(ctx, "forecast-service.variables")
	defer span.End()

	fields := domain.Fields()
	out := make([]Variable, 0, len(fields))
	for _, f := range fields {
		out = append(out, Variable{
			Name:   f.Name,
			Label:  f.Label,
			Target: f.Name == s.pipeline.Target(),
		})
	}
	return out, nil
}

// Trend returns the monthly series of one variable.
func (s *ForecastService) Trend(ctx context.Context, name string) (*Trend, error) {
	ctx, span := s.tracer.Start(ctx, "forecast-service.trend")
	defer span.End()
	span.SetAttributes(attribute.String("dataset.field", name))

	field, ok := domain.LookupField(name)
	if !ok {
		err := fmt.Errorf("%w: %s", domain.ErrUnknownField, name)
		span.RecordError(err)
		return nil, s.fail("trend", err)
	}
	ds, err := s.source.Load(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, s.fail("trend", err)
	}
	points, err := ds.Series(name)
	if err != nil {
		return nil, s.fail("trend", err)
	}
	return &Trend{Name: field.Name, Label: field.Label, Points: points}, nil
}

// Latest returns the most recent complete observation.
func (s *ForecastService) Latest(ctx context.Context) (*LatestReport, error) {
	ctx, span := s.tracer.Start(ctx, "forecast-service.latest")
	defer span.End()

	ds, err := s.source.Load(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, s.fail("latest", err)
	}
	latest := ds.Latest()
	return &LatestReport{
		Month:  latest.Month,
		Values: latest.Record(),
		Rows:   ds.Len(),
	}, nil
}

func (s *ForecastService) train(ctx context.Context) (*dataset.Dataset, *training.Bundle, error) {
	ds, err := s.source.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	bundle, err := s.pipeline.Run(ctx, ds)
	if err != nil {
		return nil, nil, err
	}
	return ds, bundle, nil
}

func (s *ForecastService) fail(op string, err error) error {
	kind := domain.Classify(err)
	s.recorder.RecordError(string(kind))
	level := zerolog.ErrorLevel
	if kind == domain.KindRequest || kind == domain.KindCanceled {
		level = zerolog.WarnLevel
	}
	s.logger.WithLevel(level).Err(err).Str("op", op).Str("kind", string(kind)).Msg("request failed")
	return err
}

func applyOverrides(obs domain.Observation, overrides map[string]float64) (domain.Observation, error) {
	for _, name := range overriddenNames(overrides) {
		next, err := obs.With(name, overrides[name])
		if err != nil {
			return domain.Observation{}, err
		}
		obs = next
	}
	return obs, nil
}

func overriddenNames(overrides map[string]float64) []string {
	if len(overrides) == 0 {
		return nil
	}
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func splitInfo(ds *dataset.Dataset, bundle *training.Bundle) Split {
	split := Split{
		Index:     bundle.SplitIndex(),
		TrainRows: bundle.TrainRows(),
		TestRows:  bundle.TestRows(),
	}
	train := ds.Slice(0, bundle.SplitIndex())
	test := ds.Slice(bundle.SplitIndex(), ds.Len())
	if len(train) > 0 {
		split.TrainFrom, split.TrainTo = train[0].Month, train[len(train)-1].Month
	}
	if len(test) > 0 {
		split.TestFrom, split.TestTo = test[0].Month, test[len(test)-1].Month
	}
	return split
}

func scoreOf(bundle *training.Bundle, name string) float64 {
	for _, sc := range bundle.Scores() {
		if sc.Model == name {
			return sc.R2
		}
	}
	return 0
}
