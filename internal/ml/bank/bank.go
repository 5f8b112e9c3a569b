package bank

import (
	"errors"
	"fmt"

	"ratecast/internal/domain"
	"ratecast/internal/ml/models"
	"ratecast/internal/ml/models/forest"
	"ratecast/internal/ml/models/linear"
	"ratecast/internal/ml/models/xgboost"
)

const (
	RandomForest     = "Random Forest"
	LinearRegression = "Linear Regression"
	XGBoost          = "XGBoost"
)

// Entry is one candidate algorithm. New returns an unfitted regressor.
type Entry struct {
	Name        string
	Hyperparams map[string]any
	New         func() models.Regressor
}

// Bank is an ordered model catalogue. Order decides evaluation order and
// breaks R² ties when picking the best model.
type Bank struct {
	entries []Entry
}

func New(entries ...Entry) (*Bank, error) {
	b := &Bank{}
	for _, e := range entries {
		if err := b.Register(e); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Default returns the three stock regressors.
func Default() *Bank {
	rf := forest.DefaultTrainOptions()
	xgb := xgboost.DefaultTrainOptions()
	b, _ := New(
		Entry{
			Name: RandomForest,
			Hyperparams: map[string]any{
				"n_estimators":     rf.Trees,
				"random_state":     rf.Seed,
				"max_depth":        nil,
				"min_samples_leaf": rf.MinSamplesLeaf,
				"bootstrap":        true,
			},
			New: func() models.Regressor { return forest.New(rf) },
		},
		Entry{
			Name:        LinearRegression,
			Hyperparams: map[string]any{"fit_intercept": true},
			New:         func() models.Regressor { return linear.New() },
		},
		Entry{
			Name: XGBoost,
			Hyperparams: map[string]any{
				"n_estimators":     xgb.Rounds,
				"learning_rate":    xgb.LearningRate,
				"max_depth":        xgb.MaxDepth,
				"reg_lambda":       xgb.Lambda,
				"min_child_weight": xgb.MinChildWeight,
				"objective":        "reg:squarederror",
			},
			New: func() models.Regressor { return xgboost.New(xgb) },
		},
	)
	return b
}

// Register appends e. Names must be unique and non-empty.
func (b *Bank) Register(e Entry) error {
	if e.Name == "" {
		return errors.New("bank entry requires a name")
	}
	if e.New == nil {
		return fmt.Errorf("bank entry %q requires a constructor", e.Name)
	}
	if _, ok := b.Lookup(e.Name); ok {
		return fmt.Errorf("bank entry %q already registered", e.Name)
	}
	b.entries = append(b.entries, e)
	return nil
}

func (b *Bank) Lookup(name string) (Entry, bool) {
	for _, e := range b.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Get is Lookup that fails with domain.ErrUnknownModel.
func (b *Bank) Get(name string) (Entry, error) {
	e, ok := b.Lookup(name)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", domain.ErrUnknownModel, name)
	}
	return e, nil
}

func (b *Bank) Entries() []Entry {
	return append([]Entry(nil), b.entries...)
}

func (b *Bank) Names() []string {
	out := make([]string, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.Name
	}
	return out
}

func (b *Bank) Len() int { return len(b.entries) }
