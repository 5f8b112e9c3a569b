package domain

import (
	"fmt"
	"math"
	"time"
)

// Column names as they appear in the monthly macro table.
const (
	FieldMonth              = "Month"
	FieldInflation          = "Inflation_Annual"
	FieldBroadMoney         = "Broad_Money_M2"
	FieldExchangeRate       = "USDZMW"
	FieldLendingMargin      = "Lending_Margin"
	FieldAverageLendingRate = "Average_Lending_Rate"
	FieldInterbankRate      = "Weighted_Interbank_Rate"
	FieldLiquidityRatio     = "Actual_Ratio_%"
	FieldPolicyRate         = "BoZ_Policy_Rate"
)

// DefaultTarget is the field the models learn to forecast.
const DefaultTarget = FieldPolicyRate

// Observation is one month of macro data.
type Observation struct {
	Month                 time.Time `json:"month"`
	InflationAnnual       float64   `json:"inflation_annual"`
	BroadMoneyM2          float64   `json:"broad_money_m2"`
	USDZMW                float64   `json:"usdzmw"`
	LendingMargin         float64   `json:"lending_margin"`
	AverageLendingRate    float64   `json:"average_lending_rate"`
	WeightedInterbankRate float64   `json:"weighted_interbank_rate"`
	LiquidityRatio        float64   `json:"liquidity_ratio"`
	PolicyRate            float64   `json:"policy_rate"`
}

// Field binds a column name to the Observation member it is read from and
// written to. Selection always goes through the catalogue, never by position.
type Field struct {
	Name  string
	Label string
	get   func(Observation) float64
	set   func(*Observation, float64)
}

func (f Field) Value(o Observation) float64 { return f.get(o) }

var catalogue = []Field{
	{
		Name: FieldInflation, Label: "Inflation (Annual %)",
		get: func(o Observation) float64 { return o.InflationAnnual },
		set: func(o *Observation, v float64) { o.InflationAnnual = v },
	},
	{
		Name: FieldBroadMoney, Label: "Broad Money (M2)",
		get: func(o Observation) float64 { return o.BroadMoneyM2 },
		set: func(o *Observation, v float64) { o.BroadMoneyM2 = v },
	},
	{
		Name: FieldExchangeRate, Label: "USD/ZMW",
		get: func(o Observation) float64 { return o.USDZMW },
		set: func(o *Observation, v float64) { o.USDZMW = v },
	},
	{
		Name: FieldLendingMargin, Label: "Lending Margin (%)",
		get: func(o Observation) float64 { return o.LendingMargin },
		set: func(o *Observation, v float64) { o.LendingMargin = v },
	},
	{
		Name: FieldAverageLendingRate, Label: "Average Lending Rate (%)",
		get: func(o Observation) float64 { return o.AverageLendingRate },
		set: func(o *Observation, v float64) { o.AverageLendingRate = v },
	},
	{
		Name: FieldInterbankRate, Label: "Weighted Interbank Rate (%)",
		get: func(o Observation) float64 { return o.WeightedInterbankRate },
		set: func(o *Observation, v float64) { o.WeightedInterbankRate = v },
	},
	{
		Name: FieldLiquidityRatio, Label: "Liquidity Ratio (%)",
		get: func(o Observation) float64 { return o.LiquidityRatio },
		set: func(o *Observation, v float64) { o.LiquidityRatio = v },
	},
	{
		Name: FieldPolicyRate, Label: "BoZ Policy Rate (%)",
		get: func(o Observation) float64 { return o.PolicyRate },
		set: func(o *Observation, v float64) { o.PolicyRate = v },
	},
}

// Fields returns the numeric field catalogue in canonical column order.
func Fields() []Field {
	out := make([]Field, len(catalogue))
	copy(out, catalogue)
	return out
}

func FieldNames() []string {
	out := make([]string, len(catalogue))
	for i := range catalogue {
		out[i] = catalogue[i].Name
	}
	return out
}

func LookupField(name string) (Field, bool) {
	for _, f := range catalogue {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Value reads a numeric field by column name.
func (o Observation) Value(name string) (float64, bool) {
	f, ok := LookupField(name)
	if !ok {
		return 0, false
	}
	return f.get(o), true
}

// With returns a copy of o with the named field replaced.
func (o Observation) With(name string, v float64) (Observation, error) {
	f, ok := LookupField(name)
	if !ok {
		return o, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	f.set(&o, v)
	return o, nil
}

// Complete reports whether every numeric field is finite and the month is set.
func (o Observation) Complete() bool {
	if o.Month.IsZero() {
		return false
	}
	for _, f := range catalogue {
		v := f.get(o)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Record flattens the observation into a named-value record in catalogue order.
func (o Observation) Record() Record {
	r := make(Record, 0, len(catalogue))
	for _, f := range catalogue {
		r = append(r, NamedValue{Name: f.Name, Value: f.get(o)})
	}
	return r
}
