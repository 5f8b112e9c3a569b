package training

import (
	"fmt"
	"time"

	"ratecast/internal/domain"
	"ratecast/internal/ml/features"
	"ratecast/internal/ml/models"
)

type Score struct {
	Model string  `json:"model"`
	R2    float64 `json:"r2"`
}

type EvaluationPoint struct {
	Month     time.Time `json:"month"`
	Actual    float64   `json:"actual"`
	Predicted float64   `json:"predicted"`
	Residual  float64   `json:"residual"`
}

// Model is a fitted regressor bound to the run that produced it.
type Model struct {
	name         string
	runID        string
	featureNames []string
	hyperparams  map[string]any
	regressor    models.Regressor
}

func (m *Model) Name() string  { return m.name }
func (m *Model) RunID() string { return m.runID }

func (m *Model) FeatureNames() []string { return append([]string(nil), m.featureNames...) }

func (m *Model) Hyperparams() map[string]any {
	out := make(map[string]any, len(m.hyperparams))
	for k, v := range m.hyperparams {
		out[k] = v
	}
	return out
}

// Predict expects rows already scaled by the bundle's scaler.
func (m *Model) Predict(x [][]float64) ([]float64, error) {
	return m.regressor.Predict(x)
}

// Bundle is everything one training run produced. It is never mutated after
// Run returns, so it may be shared across goroutines.
type Bundle struct {
	runID        string
	target       string
	scaler       *features.Scaler
	featureNames []string
	models       []*Model
	scores       []Score
	series       map[string][]EvaluationPoint
	splitIndex   int
	trainRows    int
	testRows     int
	trainedAt    time.Time
}

func (b *Bundle) RunID() string            { return b.runID }
func (b *Bundle) Target() string           { return b.target }
func (b *Bundle) Scaler() *features.Scaler { return b.scaler }
func (b *Bundle) SplitIndex() int          { return b.splitIndex }
func (b *Bundle) TrainRows() int           { return b.trainRows }
func (b *Bundle) TestRows() int            { return b.testRows }
func (b *Bundle) TrainedAt() time.Time     { return b.trainedAt }
func (b *Bundle) FeatureNames() []string   { return append([]string(nil), b.featureNames...) }
func (b *Bundle) Scores() []Score          { return append([]Score(nil), b.scores...) }

func (b *Bundle) ModelNames() []string {
	out := make([]string, len(b.models))
	for i, m := range b.models {
		out[i] = m.name
	}
	return out
}

// Model looks up a trained model by bank name.
func (b *Bundle) Model(name string) (*Model, error) {
	for _, m := range b.models {
		if m.name == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownModel, name)
}

// Best is the highest-scoring model; ties go to the earlier bank entry.
func (b *Bundle) Best() Score {
	var best Score
	for i, s := range b.scores {
		if i == 0 || s.R2 > best.R2 {
			best = s
		}
	}
	return best
}

// Series returns the held-out predictions of one model.
func (b *Bundle) Series(name string) ([]EvaluationPoint, error) {
	pts, ok := b.series[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownModel, name)
	}
	return append([]EvaluationPoint(nil), pts...), nil
}
