package linear

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"ratecast/internal/ml/models"
)

const epsilon = 2.220446049250313e-16

// Model is ordinary least squares with an intercept. Collinear or
// underdetermined designs get the minimum-norm solution.
type Model struct {
	weights   []float64
	intercept float64
	rank      int
	fitted    bool
}

func New() *Model { return &Model{} }

func (m *Model) Fit(x [][]float64, y []float64) error {
	width, err := models.ValidateTraining(x, y)
	if err != nil {
		return err
	}
	n := len(x)

	xMean := make([]float64, width)
	for _, row := range x {
		floats.Add(xMean, row)
	}
	floats.Scale(1/float64(n), xMean)
	yMean := floats.Sum(y) / float64(n)

	a := mat.NewDense(n, width, nil)
	b := mat.NewVecDense(n, nil)
	for i, row := range x {
		for j, v := range row {
			a.Set(i, j, v-xMean[j])
		}
		b.SetVec(i, y[i]-yMean)
	}

	w := make([]float64, width)
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return errors.New("linear: svd factorisation failed")
	}
	rcond := epsilon * float64(max(n, width))
	rank := svd.Rank(rcond)
	if rank > 0 {
		var sol mat.VecDense
		svd.SolveVecTo(&sol, b, rank)
		for j := range w {
			w[j] = sol.AtVec(j)
		}
	}
	for j, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("linear: non-finite weight for feature %d", j)
		}
	}

	m.weights = w
	m.intercept = yMean - floats.Dot(w, xMean)
	m.rank = rank
	m.fitted = true
	return nil
}

func (m *Model) Predict(x [][]float64) ([]float64, error) {
	if !m.fitted {
		return nil, models.ErrNotFitted
	}
	if err := models.ValidateRows(x, len(m.weights)); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = m.intercept + floats.Dot(m.weights, row)
	}
	return out, nil
}

func (m *Model) Weights() []float64 { return append([]float64(nil), m.weights...) }

func (m *Model) Intercept() float64 { return m.intercept }

// Rank is the numerical rank of the centred design seen by Fit.
func (m *Model) Rank() int { return m.rank }
