package models

import (
	"errors"
	"fmt"
)

// Regressor is a numeric model trained on standardised feature rows.
type Regressor interface {
	Fit(features [][]float64, targets []float64) error
	Predict(features [][]float64) ([]float64, error)
}

var (
	ErrNotFitted      = errors.New("model is not fitted")
	ErrInvalidDataset = errors.New("invalid training dataset")
)

// ValidateTraining checks that x is a non-empty rectangular matrix with one
// target per row and returns its width.
func ValidateTraining(x [][]float64, y []float64) (int, error) {
	if len(x) == 0 || len(x) != len(y) {
		return 0, fmt.Errorf("%w: %d rows, %d targets", ErrInvalidDataset, len(x), len(y))
	}
	width := len(x[0])
	if width == 0 {
		return 0, fmt.Errorf("%w: empty feature vectors", ErrInvalidDataset)
	}
	if err := ValidateRows(x, width); err != nil {
		return 0, err
	}
	return width, nil
}

// ValidateRows checks every row has width values.
func ValidateRows(x [][]float64, width int) error {
	for i, row := range x {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d values, want %d", ErrInvalidDataset, i, len(row), width)
		}
	}
	return nil
}
