package inference

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"ratecast/internal/domain"
	"ratecast/internal/ml/features"
	"ratecast/internal/ml/training"
)

// DeadBand is the move, in percentage points, a forecast must exceed before
// it signals a rate change.
const DeadBand = 0.05

// DeriveSignal compares a forecast with the current rate. Both band edges
// are Hold.
func DeriveSignal(forecast, current float64) domain.Signal {
	if forecast > current+DeadBand {
		return domain.SignalRaise
	}
	if forecast < current-DeadBand {
		return domain.SignalLower
	}
	return domain.SignalHold
}

type Result struct {
	Model       string        `json:"model"`
	RunID       string        `json:"run_id"`
	Forecast    float64       `json:"forecast"`
	CurrentRate float64       `json:"current_rate"`
	Delta       float64       `json:"delta"`
	Signal      domain.Signal `json:"signal"`
}

type Engine struct {
	tracer trace.Tracer
}

func NewEngine(tracer trace.Tracer) *Engine {
	return &Engine{tracer: tracer}
}

// Forecast applies model to one record using the bundle's scaler and
// feature order. Record values are matched by name.
func (e *Engine) Forecast(ctx context.Context, bundle *training.Bundle, model *training.Model, record domain.Record) (Result, error) {
	_, span := e.tracer.Start(ctx, "ml-inference.forecast")
	defer span.End()

	if bundle == nil || model == nil {
		return Result{}, fmt.Errorf("%w: missing bundle or model", domain.ErrLineageMismatch)
	}
	span.SetAttributes(
		attribute.String("ml.model", model.Name()),
		attribute.String("ml.run_id", bundle.RunID()),
	)

	if model.RunID() != bundle.RunID() {
		err := fmt.Errorf("%w: model run %s, bundle run %s", domain.ErrLineageMismatch, model.RunID(), bundle.RunID())
		span.RecordError(err)
		return Result{}, err
	}
	order := bundle.FeatureNames()
	if !features.SameOrder(model.FeatureNames(), order) || !features.SameOrder(bundle.Scaler().FeatureNames(), order) {
		err := fmt.Errorf("%w: model or scaler disagrees with bundle", domain.ErrFeatureOrderMismatch)
		span.RecordError(err)
		return Result{}, err
	}

	x, err := bundle.Scaler().TransformRecord(order, record)
	if err != nil {
		span.RecordError(err)
		return Result{}, err
	}
	current, ok := record.Get(bundle.Target())
	if !ok {
		err := fmt.Errorf("%w: %s", domain.ErrMissingField, bundle.Target())
		span.RecordError(err)
		return Result{}, err
	}

	preds, err := model.Predict([][]float64{x})
	if err != nil {
		span.RecordError(err)
		return Result{}, fmt.Errorf("predict %s: %w", model.Name(), err)
	}
	forecast := preds[0]
	signal := DeriveSignal(forecast, current)
	span.SetAttributes(
		attribute.Float64("ml.forecast", forecast),
		attribute.String("ml.signal", string(signal)),
	)

	return Result{
		Model:       model.Name(),
		RunID:       bundle.RunID(),
		Forecast:    forecast,
		CurrentRate: current,
		Delta:       forecast - current,
		Signal:      signal,
	}, nil
}

// ForecastNamed resolves name within the bundle and calls Forecast.
func (e *Engine) ForecastNamed(ctx context.Context, bundle *training.Bundle, name string, record domain.Record) (Result, error) {
	if bundle == nil {
		return Result{}, fmt.Errorf("%w: missing bundle", domain.ErrLineageMismatch)
	}
	model, err := bundle.Model(name)
	if err != nil {
		return Result{}, err
	}
	return e.Forecast(ctx, bundle, model, record)
}
