package forest

import (
	"math/rand/v2"
	"runtime"

	"github.com/rmera/boo"
	"golang.org/x/sync/errgroup"

	"ratecast/internal/ml/models"
)

type TrainOptions struct {
	Trees int
	Seed  uint64
	// MaxDepth <= 0 grows every tree to purity.
	MaxDepth       int
	MinSamplesLeaf int
}

func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		Trees:          200,
		Seed:           42,
		MaxDepth:       0,
		MinSamplesLeaf: 1,
	}
}

// Model is a bagged ensemble of boo regression trees. Every tree sees a
// bootstrap sample of the rows and all features; predictions are averaged.
type Model struct {
	opts  TrainOptions
	width int
	trees []*boo.Tree
}

func New(opts TrainOptions) *Model {
	if opts.Trees <= 0 {
		opts.Trees = DefaultTrainOptions().Trees
	}
	if opts.MinSamplesLeaf <= 0 {
		opts.MinSamplesLeaf = DefaultTrainOptions().MinSamplesLeaf
	}
	return &Model{opts: opts}
}

// treeOptions returns variance-reduction (non-xgboost) tree options over
// one bootstrap sample. A tree can never be deeper than its row count, so
// that bound stands in for unlimited depth.
func (m *Model) treeOptions(y []float64, sample []int) *boo.TreeOptions {
	o := boo.DefaultGTreeOptions()
	o.XGB = false
	o.Y = y
	o.Indexes = sample
	o.MinChildWeight = float64(m.opts.MinSamplesLeaf)
	o.MaxDepth = m.opts.MaxDepth
	if o.MaxDepth <= 0 {
		o.MaxDepth = len(y)
	}
	return o
}

func (m *Model) Fit(x [][]float64, y []float64) error {
	width, err := models.ValidateTraining(x, y)
	if err != nil {
		return err
	}
	y = append([]float64(nil), y...)

	// Samples are drawn up front from one stream so the result does not
	// depend on goroutine scheduling.
	rng := rand.New(rand.NewPCG(m.opts.Seed, m.opts.Seed))
	samples := make([][]int, m.opts.Trees)
	for t := range samples {
		idx := make([]int, len(y))
		for i := range idx {
			idx[i] = rng.IntN(len(y))
		}
		samples[t] = idx
	}

	trees := make([]*boo.Tree, m.opts.Trees)

	// Each tree gets its own options and scratch buffers; x and y are only read.
	var g errgroup.Group
	g.SetLimit(max(min(runtime.NumCPU(), m.opts.Trees), 1))
	for t := range trees {
		g.Go(func() error {
			trees[t] = boo.NewTree(x, m.treeOptions(y, samples[t]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	m.width = width
	m.trees = trees
	return nil
}

func (m *Model) Predict(x [][]float64) ([]float64, error) {
	if len(m.trees) == 0 {
		return nil, models.ErrNotFitted
	}
	if err := models.ValidateRows(x, m.width); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, row := range x {
		sum := 0.0
		for _, t := range m.trees {
			sum += t.PredictSingle(row)
		}
		out[i] = sum / float64(len(m.trees))
	}
	return out, nil
}

func (m *Model) Options() TrainOptions { return m.opts }
