package service

import (
	"time"

	"ratecast/internal/commentary"
	"ratecast/internal/dataset"
	"ratecast/internal/domain"
	"ratecast/internal/ml/inference"
	"ratecast/internal/ml/training"
)

// Split describes the chronological train/evaluation boundary of a run.
type Split struct {
	Index     int       `json:"index"`
	TrainRows int       `json:"train_rows"`
	TestRows  int       `json:"test_rows"`
	TrainFrom time.Time `json:"train_from"`
	TrainTo   time.Time `json:"train_to"`
	TestFrom  time.Time `json:"test_from"`
	TestTo    time.Time `json:"test_to"`
}

type ModelEvaluation struct {
	Model       string                     `json:"model"`
	R2          float64                    `json:"r2"`
	Hyperparams map[string]any             `json:"hyperparams"`
	Series      []training.EvaluationPoint `json:"series"`
}

type EvaluationReport struct {
	RunID     string            `json:"run_id"`
	Target    string            `json:"target"`
	TrainedAt time.Time         `json:"trained_at"`
	Rows      int               `json:"rows"`
	Dropped   int               `json:"dropped"`
	Split     Split             `json:"split"`
	Features  []string          `json:"features"`
	Scores    []training.Score  `json:"scores"`
	Best      training.Score    `json:"best"`
	Models    []ModelEvaluation `json:"models"`
}

// ForecastRequest selects a model and a scenario. Overrides replace values
// of the latest observation by field name.
type ForecastRequest struct {
	Model     string             `json:"model,omitempty"`
	Overrides map[string]float64 `json:"overrides,omitempty"`
}

type ForecastReport struct {
	inference.Result
	BestModel  string                 `json:"best_model"`
	AsOf       time.Time              `json:"as_of"`
	Scenario   domain.Record          `json:"scenario"`
	Overridden []string               `json:"overridden,omitempty"`
	Indicators []commentary.Indicator `json:"indicators"`
	Commentary string                 `json:"commentary"`
}

type Variable struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Target bool   `json:"target"`
}

type Trend struct {
	Name   string          `json:"name"`
	Label  string          `json:"label"`
	Points []dataset.Point `json:"points"`
}

type LatestReport struct {
	Month  time.Time     `json:"month"`
	Values domain.Record `json:"values"`
	Rows   int           `json:"rows"`
}
