package features

import (
	"fmt"

	"ratecast/internal/domain"
)

// Preprocessor derives model inputs from observations. The feature order is
// the catalogue order minus the target and is fixed at construction.
type Preprocessor struct {
	target   domain.Field
	features []domain.Field
}

func NewPreprocessor(target string) (*Preprocessor, error) {
	t, ok := domain.LookupField(target)
	if !ok {
		return nil, fmt.Errorf("target %q: %w", target, domain.ErrUnknownField)
	}
	p := &Preprocessor{target: t}
	for _, f := range domain.Fields() {
		if f.Name != target {
			p.features = append(p.features, f)
		}
	}
	return p, nil
}

func (p *Preprocessor) Target() string { return p.target.Name }

func (p *Preprocessor) FeatureNames() []string {
	out := make([]string, len(p.features))
	for i, f := range p.features {
		out[i] = f.Name
	}
	return out
}

// Matrix returns one raw feature row per observation.
func (p *Preprocessor) Matrix(obs []domain.Observation) [][]float64 {
	rows := make([][]float64, len(obs))
	for i, o := range obs {
		row := make([]float64, len(p.features))
		for j, f := range p.features {
			row[j] = f.Value(o)
		}
		rows[i] = row
	}
	return rows
}

func (p *Preprocessor) Targets(obs []domain.Observation) []float64 {
	out := make([]float64, len(obs))
	for i, o := range obs {
		out[i] = p.target.Value(o)
	}
	return out
}

// Fit learns per-feature scaling parameters from obs only.
func (p *Preprocessor) Fit(obs []domain.Observation) (*Scaler, error) {
	if len(obs) == 0 {
		return nil, fmt.Errorf("fit scaler: %w", domain.ErrEmptyDataset)
	}
	return FitScaler(p.FeatureNames(), p.Matrix(obs))
}
