package features

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"ratecast/internal/domain"
)

const epsilon = 2.220446049250313e-16

// Scaler standardises features with the population mean and deviation of
// the rows it was fitted on. It is never refit after construction.
type Scaler struct {
	names []string
	means []float64
	stds  []float64
}

// FitScaler computes column statistics over rows. A zero deviation is
// replaced with 1 so a constant column maps to 0.
func FitScaler(names []string, rows [][]float64) (*Scaler, error) {
	if len(rows) == 0 {
		return nil, errors.New("no rows to fit")
	}
	n := len(names)
	s := &Scaler{
		names: append([]string(nil), names...),
		means: make([]float64, n),
		stds:  make([]float64, n),
	}
	col := make([]float64, len(rows))
	for j := 0; j < n; j++ {
		for i, row := range rows {
			if len(row) != n {
				return nil, fmt.Errorf("row %d has %d values, want %d", i, len(row), n)
			}
			col[i] = row[j]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		// Rounding can leave a constant column with a tiny non-zero spread.
		if std < 10*epsilon*math.Max(1, math.Abs(mean)) {
			std = 1
		}
		s.means[j] = mean
		s.stds[j] = std
	}
	return s, nil
}

func (s *Scaler) FeatureNames() []string { return append([]string(nil), s.names...) }

func (s *Scaler) Means() []float64 { return append([]float64(nil), s.means...) }

func (s *Scaler) Stds() []float64 { return append([]float64(nil), s.stds...) }

// Transform scales rows whose columns are laid out in names order.
func (s *Scaler) Transform(names []string, rows [][]float64) ([][]float64, error) {
	if err := s.checkOrder(names); err != nil {
		return nil, err
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(s.means) {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", i, len(row), len(s.means), domain.ErrFeatureOrderMismatch)
		}
		out[i] = s.scale(row)
	}
	return out, nil
}

// TransformRecord selects names from record by name and scales them.
// Record position is irrelevant; a missing name fails the call.
func (s *Scaler) TransformRecord(names []string, record domain.Record) ([]float64, error) {
	if err := s.checkOrder(names); err != nil {
		return nil, err
	}
	raw := make([]float64, len(names))
	for i, name := range names {
		v, ok := record.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingField, name)
		}
		raw[i] = v
	}
	return s.scale(raw), nil
}

func (s *Scaler) scale(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.means[j]) / s.stds[j]
	}
	return out
}

func (s *Scaler) checkOrder(names []string) error {
	if !SameOrder(names, s.names) {
		return fmt.Errorf("scaler fitted on %v, got %v: %w", s.names, names, domain.ErrFeatureOrderMismatch)
	}
	return nil
}

// SameOrder reports whether a and b list the same names in the same order.
func SameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
