package dataset

import (
	"fmt"
	"sort"
	"time"

	"ratecast/internal/domain"
)

// Dataset is an ascending, read-only sequence of complete observations.
type Dataset struct {
	obs     []domain.Observation
	dropped int
}

// Point is one month/value pair of a single variable.
type Point struct {
	Month time.Time `json:"month"`
	Value float64   `json:"value"`
}

// New sorts a copy of obs by month (stable) and rejects an empty input.
// Incomplete observations are expected to be filtered by the caller.
func New(obs []domain.Observation) (*Dataset, error) {
	if len(obs) == 0 {
		return nil, domain.ErrEmptyDataset
	}
	cp := make([]domain.Observation, len(obs))
	copy(cp, obs)
	sort.SliceStable(cp, func(i, j int) bool {
		return cp[i].Month.Before(cp[j].Month)
	})
	return &Dataset{obs: cp}, nil
}

func (d *Dataset) Len() int { return len(d.obs) }

func (d *Dataset) At(i int) domain.Observation { return d.obs[i] }

// Dropped is the number of incomplete rows discarded while loading.
func (d *Dataset) Dropped() int { return d.dropped }

// Observations returns a copy of the rows in ascending month order.
func (d *Dataset) Observations() []domain.Observation {
	out := make([]domain.Observation, len(d.obs))
	copy(out, d.obs)
	return out
}

// Latest returns the most recent observation.
func (d *Dataset) Latest() domain.Observation { return d.obs[len(d.obs)-1] }

// Slice returns the rows in [from, to) as a copy.
func (d *Dataset) Slice(from, to int) []domain.Observation {
	if from < 0 {
		from = 0
	}
	if to > len(d.obs) {
		to = len(d.obs)
	}
	if from >= to {
		return nil
	}
	out := make([]domain.Observation, to-from)
	copy(out, d.obs[from:to])
	return out
}

func (d *Dataset) Fields() []string { return domain.FieldNames() }

// Series extracts one variable over time for trend views.
func (d *Dataset) Series(name string) ([]Point, error) {
	f, ok := domain.LookupField(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownField, name)
	}
	out := make([]Point, len(d.obs))
	for i, o := range d.obs {
		out[i] = Point{Month: o.Month, Value: f.Value(o)}
	}
	return out, nil
}
