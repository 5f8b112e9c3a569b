package training

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/stat"

	"ratecast/internal/dataset"
	"ratecast/internal/domain"
	"ratecast/internal/ml/bank"
	"ratecast/internal/ml/features"
)

const (
	// TrainFraction is the share of rows, oldest first, used for fitting.
	TrainFraction = 0.8
	// MinEvaluationRows is the smallest held-out segment R² is defined on.
	MinEvaluationRows = 2
)

// Recorder receives pipeline timings and scores.
type Recorder interface {
	ObservePipeline(d time.Duration)
	ObserveFit(model string, d time.Duration)
	SetScore(model string, r2 float64)
}

type nopRecorder struct{}

func (nopRecorder) ObservePipeline(time.Duration)    {}
func (nopRecorder) ObserveFit(string, time.Duration) {}
func (nopRecorder) SetScore(string, float64)         {}

type Config struct {
	Target string
}

type Pipeline struct {
	tracer   trace.Tracer
	logger   zerolog.Logger
	bank     *bank.Bank
	prep     *features.Preprocessor
	recorder Recorder
	now      func() time.Time
	newRunID func() string
}

func NewPipeline(tracer trace.Tracer, logger zerolog.Logger, b *bank.Bank, cfg Config) (*Pipeline, error) {
	if cfg.Target == "" {
		cfg.Target = domain.DefaultTarget
	}
	if b == nil {
		b = bank.Default()
	}
	prep, err := features.NewPreprocessor(cfg.Target)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		tracer:   tracer,
		logger:   logger.With().Str("component", "ml-training").Logger(),
		bank:     b,
		prep:     prep,
		recorder: nopRecorder{},
		now:      time.Now,
		newRunID: uuid.NewString,
	}, nil
}

func (p *Pipeline) SetRecorder(r Recorder) {
	if r == nil {
		r = nopRecorder{}
	}
	p.recorder = r
}

func (p *Pipeline) Target() string { return p.prep.Target() }

func (p *Pipeline) Bank() *bank.Bank { return p.bank }

// SplitIndex is the number of leading rows used for training.
func SplitIndex(n int) int {
	return int(float64(n) * TrainFraction)
}

// Run fits every bank entry on the oldest rows of ds and scores it on the
// rest. The scaler only ever sees the training rows.
func (p *Pipeline) Run(ctx context.Context, ds *dataset.Dataset) (*Bundle, error) {
	ctx, span := p.tracer.Start(ctx, "ml-training.run")
	defer span.End()
	started := time.Now()

	obs := ds.Observations()
	n := len(obs)
	split := SplitIndex(n)
	if n-split < MinEvaluationRows {
		err := fmt.Errorf("%w: %d rows leave %d for evaluation, need %d", domain.ErrInsufficientData, n, n-split, MinEvaluationRows)
		span.RecordError(err)
		return nil, err
	}
	train, test := obs[:split], obs[split:]
	span.SetAttributes(
		attribute.Int("ml.rows", n),
		attribute.Int("ml.train_rows", len(train)),
		attribute.Int("ml.test_rows", len(test)),
	)

	scaler, err := p.prep.Fit(train)
	if err != nil {
		return nil, fmt.Errorf("fit scaler: %w", err)
	}
	names := p.prep.FeatureNames()
	trainX, err := scaler.Transform(names, p.prep.Matrix(train))
	if err != nil {
		return nil, err
	}
	testX, err := scaler.Transform(names, p.prep.Matrix(test))
	if err != nil {
		return nil, err
	}
	trainY := p.prep.Targets(train)
	testY := p.prep.Targets(test)

	b := &Bundle{
		runID:        p.newRunID(),
		target:       p.prep.Target(),
		scaler:       scaler,
		featureNames: names,
		series:       make(map[string][]EvaluationPoint, p.bank.Len()),
		splitIndex:   split,
		trainRows:    len(train),
		testRows:     len(test),
		trainedAt:    p.now().UTC(),
	}

	for _, entry := range p.bank.Entries() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fitStarted := time.Now()
		_, fitSpan := p.tracer.Start(ctx, "ml-training.fit", trace.WithAttributes(attribute.String("ml.model", entry.Name)))
		reg := entry.New()
		if err := reg.Fit(trainX, trainY); err != nil {
			fitSpan.RecordError(err)
			fitSpan.End()
			return nil, fmt.Errorf("fit %s: %w", entry.Name, err)
		}
		preds, err := reg.Predict(testX)
		if err != nil {
			fitSpan.RecordError(err)
			fitSpan.End()
			return nil, fmt.Errorf("evaluate %s: %w", entry.Name, err)
		}
		r2 := R2(testY, preds)
		fitSpan.SetAttributes(attribute.Float64("ml.r2", r2))
		fitSpan.End()
		p.recorder.ObserveFit(entry.Name, time.Since(fitStarted))
		p.recorder.SetScore(entry.Name, r2)

		b.models = append(b.models, &Model{
			name:         entry.Name,
			runID:        b.runID,
			featureNames: names,
			hyperparams:  entry.Hyperparams,
			regressor:    reg,
		})
		b.scores = append(b.scores, Score{Model: entry.Name, R2: r2})

		points := make([]EvaluationPoint, len(test))
		for i, o := range test {
			points[i] = EvaluationPoint{
				Month:     o.Month,
				Actual:    testY[i],
				Predicted: preds[i],
				Residual:  preds[i] - testY[i],
			}
		}
		b.series[entry.Name] = points

		p.logger.Debug().
			Str("run_id", b.runID).
			Str("model", entry.Name).
			Float64("r2", r2).
			Dur("elapsed", time.Since(fitStarted)).
			Msg("model trained")
	}

	p.recorder.ObservePipeline(time.Since(started))
	p.logger.Info().
		Str("run_id", b.runID).
		Int("train_rows", b.trainRows).
		Int("test_rows", b.testRows).
		Str("best", b.Best().Model).
		Msg("training run complete")
	return b, nil
}

// R2 is the coefficient of determination of predicted against actual.
// Constant actuals score 1 for an exact prediction and 0 otherwise.
func R2(actual, predicted []float64) float64 {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return math.NaN()
	}
	mean := stat.Mean(actual, nil)
	var ssTot, ssRes float64
	for i := range actual {
		d := actual[i] - mean
		ssTot += d * d
		r := actual[i] - predicted[i]
		ssRes += r * r
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return stat.RSquaredFrom(predicted, actual, nil)
}
