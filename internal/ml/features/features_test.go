package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"ratecast/internal/domain"
)

func makeObservations(n int) []domain.Observation {
	start := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]domain.Observation, n)
	for i := range out {
		f := float64(i)
		out[i] = domain.Observation{
			Month:                 start.AddDate(0, i, 0),
			InflationAnnual:       8 + 0.5*f,
			BroadMoneyM2:          90000 + 1500*f,
			USDZMW:                14 + 0.3*f,
			LendingMargin:         6.5,
			AverageLendingRate:    25 - 0.1*f,
			WeightedInterbankRate: 10 + 0.2*f*f/10,
			LiquidityRatio:        30 + float64(i%5),
			PolicyRate:            9 + 0.25*f,
		}
	}
	return out
}

func TestNewPreprocessorRejectsUnknownTarget(t *testing.T) {
	_, err := NewPreprocessor("GDP")
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestFeatureOrderExcludesTarget(t *testing.T) {
	p, err := NewPreprocessor(domain.FieldPolicyRate)
	require.NoError(t, err)

	names := p.FeatureNames()
	require.Len(t, names, len(domain.FieldNames())-1)
	assert.NotContains(t, names, domain.FieldPolicyRate)
	assert.Equal(t, domain.FieldInflation, names[0])
	assert.Equal(t, domain.FieldLiquidityRatio, names[len(names)-1])

	alt, err := NewPreprocessor(domain.FieldInflation)
	require.NoError(t, err)
	assert.Contains(t, alt.FeatureNames(), domain.FieldPolicyRate)
	assert.Equal(t, domain.FieldInflation, alt.Target())
}

func TestScalerStandardisesFittedSegment(t *testing.T) {
	p, err := NewPreprocessor(domain.FieldPolicyRate)
	require.NoError(t, err)
	obs := makeObservations(24)

	s, err := p.Fit(obs)
	require.NoError(t, err)

	scaled, err := s.Transform(p.FeatureNames(), p.Matrix(obs))
	require.NoError(t, err)

	col := make([]float64, len(scaled))
	for j, name := range p.FeatureNames() {
		for i := range scaled {
			col[i] = scaled[i][j]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		assert.InDelta(t, 0, mean, 1e-9, "mean of %s", name)
		if name == domain.FieldLendingMargin {
			assert.InDelta(t, 0, std, 1e-12, "constant column maps to zero")
			continue
		}
		assert.InDelta(t, 1, std, 1e-9, "std of %s", name)
	}
}

func TestTransformRejectsOrderMismatch(t *testing.T) {
	p, err := NewPreprocessor(domain.FieldPolicyRate)
	require.NoError(t, err)
	obs := makeObservations(5)
	s, err := p.Fit(obs)
	require.NoError(t, err)

	names := p.FeatureNames()
	names[0], names[1] = names[1], names[0]

	_, err = s.Transform(names, p.Matrix(obs))
	assert.ErrorIs(t, err, domain.ErrFeatureOrderMismatch)

	_, err = s.TransformRecord(names, obs[0].Record())
	assert.ErrorIs(t, err, domain.ErrFeatureOrderMismatch)
}

func TestTransformRecordIgnoresRecordPosition(t *testing.T) {
	p, err := NewPreprocessor(domain.FieldPolicyRate)
	require.NoError(t, err)
	obs := makeObservations(12)
	s, err := p.Fit(obs)
	require.NoError(t, err)

	rec := obs[7].Record()
	swapped := append(domain.Record(nil), rec...)
	swapped[0], swapped[3] = swapped[3], swapped[0]

	a, err := s.TransformRecord(p.FeatureNames(), rec)
	require.NoError(t, err)
	b, err := s.TransformRecord(p.FeatureNames(), swapped)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	rows, err := s.Transform(p.FeatureNames(), p.Matrix(obs[7:8]))
	require.NoError(t, err)
	assert.Equal(t, rows[0], a)
}

func TestTransformRecordMissingField(t *testing.T) {
	p, err := NewPreprocessor(domain.FieldPolicyRate)
	require.NoError(t, err)
	s, err := p.Fit(makeObservations(3))
	require.NoError(t, err)

	rec := domain.Record{{Name: domain.FieldInflation, Value: 10}}
	_, err = s.TransformRecord(p.FeatureNames(), rec)
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestFitEmpty(t *testing.T) {
	p, err := NewPreprocessor(domain.FieldPolicyRate)
	require.NoError(t, err)
	_, err = p.Fit(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)
}
