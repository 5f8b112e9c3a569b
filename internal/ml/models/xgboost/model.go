package xgboost

import (
	"errors"

	"github.com/rmera/boo"
	"github.com/rmera/boo/utils"
	"gonum.org/v1/gonum/stat"

	"ratecast/internal/ml/models"
)

type TrainOptions struct {
	Rounds         int
	LearningRate   float64
	MaxDepth       int
	Lambda         float64
	MinChildWeight float64
}

func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		Rounds:         200,
		LearningRate:   0.3,
		MaxDepth:       6,
		Lambda:         1,
		MinChildWeight: 1,
	}
}

// Model is boo's extreme gradient boosting in regression mode: squared
// error, starting from the mean training target, no row or column
// subsampling, so a fit is deterministic.
type Model struct {
	opts      TrainOptions
	width     int
	baseScore float64
	boost     *boo.MultiClass
}

func New(opts TrainOptions) *Model {
	def := DefaultTrainOptions()
	if opts.Rounds <= 0 {
		opts.Rounds = def.Rounds
	}
	if opts.LearningRate <= 0 {
		opts.LearningRate = def.LearningRate
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = def.MaxDepth
	}
	if opts.Lambda < 0 {
		opts.Lambda = def.Lambda
	}
	if opts.MinChildWeight < 1 {
		opts.MinChildWeight = def.MinChildWeight
	}
	return &Model{opts: opts}
}

func (m *Model) boosterOptions(base float64) *boo.Options {
	o := boo.DefaultXOptions()
	o.XGB = true
	o.Regression = true
	o.Rounds = m.opts.Rounds
	o.LearningRate = m.opts.LearningRate
	o.MaxDepth = m.opts.MaxDepth
	o.Lambda = m.opts.Lambda
	o.MinChildWeight = m.opts.MinChildWeight
	o.Gamma = 0
	o.SubSample = 1
	o.ColSubSample = 1
	o.EarlyStop = 0
	o.MinSample = 0
	o.BaseScore = base
	o.Verbose = false
	return o
}

func (m *Model) Fit(x [][]float64, y []float64) error {
	width, err := models.ValidateTraining(x, y)
	if err != nil {
		return err
	}

	base := stat.Mean(y, nil)
	data := &utils.DataBunch{
		Data:        x,
		FloatLabels: append([]float64(nil), y...),
	}
	boost := boo.NewMultiClass(data, m.boosterOptions(base))
	if boost == nil {
		return errors.New("failed to train xgboost model")
	}

	m.width = width
	m.baseScore = base
	m.boost = boost
	return nil
}

func (m *Model) Predict(x [][]float64) ([]float64, error) {
	if m.boost == nil {
		return nil, models.ErrNotFitted
	}
	if err := models.ValidateRows(x, m.width); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = m.boost.PredictSingle(row)[0]
	}
	return out, nil
}

func (m *Model) BaseScore() float64 { return m.baseScore }

func (m *Model) Options() TrainOptions { return m.opts }
