package commentary

import (
	"fmt"

	"ratecast/internal/domain"
)

type Indicator struct {
	Field string  `json:"field"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

var keyIndicators = []string{
	domain.FieldInflation,
	domain.FieldPolicyRate,
	domain.FieldAverageLendingRate,
	domain.FieldLiquidityRatio,
	domain.FieldExchangeRate,
	domain.FieldBroadMoney,
}

// Indicators is the key-indicator table printed alongside a policy brief.
func Indicators(record domain.Record) ([]Indicator, error) {
	out := make([]Indicator, 0, len(keyIndicators))
	for _, name := range keyIndicators {
		v, ok := record.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingField, name)
		}
		f, _ := domain.LookupField(name)
		out = append(out, Indicator{Field: name, Label: f.Label, Value: v})
	}
	return out, nil
}
