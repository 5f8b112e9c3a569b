package commentary

import (
	"context"
	"fmt"
	"strings"

	"ratecast/internal/domain"
)

// Narrator turns a forecast and the scenario it came from into a Markdown
// policy commentary.
type Narrator interface {
	Narrate(ctx context.Context, forecast float64, signal domain.Signal, record domain.Record) (string, error)
}

// RequiredFields are the record values every narrator reads.
var RequiredFields = []string{
	domain.FieldInflation,
	domain.FieldLiquidityRatio,
	domain.FieldAverageLendingRate,
	domain.FieldExchangeRate,
	domain.FieldBroadMoney,
	domain.FieldPolicyRate,
}

// Bands are the judgement thresholds commentary compares indicators with.
type Bands struct {
	InflationLow  float64
	InflationHigh float64
	LiquidityLow  float64
	LiquidityHigh float64
}

func DefaultBands() Bands {
	return Bands{
		InflationLow:  6,
		InflationHigh: 8,
		LiquidityLow:  20,
		LiquidityHigh: 50,
	}
}

type TemplateNarrator struct {
	bands Bands
}

func NewTemplateNarrator(bands Bands) *TemplateNarrator {
	if bands.InflationHigh <= bands.InflationLow {
		bands.InflationLow, bands.InflationHigh = DefaultBands().InflationLow, DefaultBands().InflationHigh
	}
	if bands.LiquidityHigh <= bands.LiquidityLow {
		bands.LiquidityLow, bands.LiquidityHigh = DefaultBands().LiquidityLow, DefaultBands().LiquidityHigh
	}
	return &TemplateNarrator{bands: bands}
}

func (n *TemplateNarrator) Bands() Bands { return n.bands }

func (n *TemplateNarrator) Narrate(_ context.Context, forecast float64, signal domain.Signal, record domain.Record) (string, error) {
	if err := record.Require(RequiredFields...); err != nil {
		return "", err
	}
	inflation, _ := record.Get(domain.FieldInflation)
	liquidity, _ := record.Get(domain.FieldLiquidityRatio)
	lending, _ := record.Get(domain.FieldAverageLendingRate)
	fx, _ := record.Get(domain.FieldExchangeRate)
	m2, _ := record.Get(domain.FieldBroadMoney)

	b := n.bands
	target := fmt.Sprintf("%s–%s%%", trim(b.InflationLow), trim(b.InflationHigh))

	paras := make([]string, 0, 7)
	paras = append(paras, fmt.Sprintf(
		"The model indicates a **%s** in the policy rate to approximately %.2f%%.", signal, forecast))

	switch {
	case inflation > b.InflationHigh:
		paras = append(paras, fmt.Sprintf(
			"Annual inflation is elevated at %.1f%%, above the BoZ target range of %s. "+
				"This suggests inflationary pressures may warrant a policy rate increase to anchor price stability.",
			inflation, target))
	case inflation < b.InflationLow:
		paras = append(paras, fmt.Sprintf(
			"Annual inflation is low at %.1f%%, below the BoZ target range of %s. "+
				"This indicates price stability, potentially allowing for a hold or modest rate reduction if economic growth is weak.",
			inflation, target))
	default:
		paras = append(paras, fmt.Sprintf(
			"Inflation is within the BoZ target range at %.1f%%, supporting a stable monetary policy stance.", inflation))
	}

	switch {
	case liquidity < b.LiquidityLow:
		paras = append(paras, fmt.Sprintf(
			"Liquidity ratio is low at %.1f%%, reflecting tight financial conditions. "+
				"This may warrant accommodative measures to support banking system stability.", liquidity))
	case liquidity > b.LiquidityHigh:
		paras = append(paras, fmt.Sprintf(
			"Liquidity ratio is high at %.1f%%, suggesting ample market liquidity, "+
				"which could provide space for monetary tightening if inflationary pressures rise.", liquidity))
	default:
		paras = append(paras, fmt.Sprintf("Liquidity levels are within normal range at %.1f%%.", liquidity))
	}

	paras = append(paras,
		fmt.Sprintf("Average lending rate is %.2f%%, indicating prevailing credit conditions in the banking sector.", lending),
		fmt.Sprintf("The USD/ZMW exchange rate stands at %.2f, which could influence imported inflation and overall macro stability.", fx),
		fmt.Sprintf("Broad money (M2) growth is %.2f, reflecting monetary expansion trends that can impact inflation and interest rate policy.", m2),
		"In conclusion, the model's recommendation integrates inflation trends relative to the BoZ target, "+
			"liquidity conditions, and broader macroeconomic indicators, providing a prudent guide for policy rate decisions.",
	)

	return strings.Join(paras, "\n\n"), nil
}

func trim(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
