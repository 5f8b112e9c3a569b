package domain

import (
	"fmt"
	"math"
)

type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Record is a single observation-shaped input as handed to inference and
// commentary. Position carries no meaning; consumers look values up by name.
type Record []NamedValue

// Get returns the named value. Non-finite values count as missing.
func (r Record) Get(name string) (float64, bool) {
	for _, nv := range r {
		if nv.Name != name {
			continue
		}
		if math.IsNaN(nv.Value) || math.IsInf(nv.Value, 0) {
			return 0, false
		}
		return nv.Value, true
	}
	return 0, false
}

// Require fails with ErrMissingField on the first absent name.
func (r Record) Require(names ...string) error {
	for _, name := range names {
		if _, ok := r.Get(name); !ok {
			return fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}
	return nil
}

// With returns a copy of r with name set to v, appending when absent.
func (r Record) With(name string, v float64) Record {
	out := make(Record, len(r), len(r)+1)
	copy(out, r)
	for i := range out {
		if out[i].Name == name {
			out[i].Value = v
			return out
		}
	}
	return append(out, NamedValue{Name: name, Value: v})
}

func (r Record) Names() []string {
	out := make([]string, len(r))
	for i := range r {
		out[i] = r[i].Name
	}
	return out
}
