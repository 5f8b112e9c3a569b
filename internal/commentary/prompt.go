package commentary

import (
	"fmt"
	"strings"

	"ratecast/internal/domain"
)

const analystBrief = `You are a monetary policy analyst writing for the Bank of Zambia Monetary Policy Committee, in the register of an IMF Article IV staff note.

Rules:
- Interpret the model forecast and indicators you are given. Do not invent figures.
- Open with the recommended action and the forecast policy rate.
- Discuss inflation against the target band, then liquidity, lending rates, the USD/ZMW rate and broad money.
- Close with one forward-looking sentence.
- Write Markdown paragraphs separated by blank lines. No headings, no bullet lists.
- Keep it under 250 words.`

func BuildSystemPrompt(b Bands) string {
	var sb strings.Builder
	sb.WriteString(analystBrief)
	sb.WriteString("\n\nJudgement bands:\n")
	sb.WriteString(fmt.Sprintf("  Inflation target: %s-%s%%\n", trim(b.InflationLow), trim(b.InflationHigh)))
	sb.WriteString(fmt.Sprintf("  Liquidity ratio: tight below %s%%, ample above %s%%\n", trim(b.LiquidityLow), trim(b.LiquidityHigh)))
	return sb.String()
}

// FormatBrief renders the forecast and key indicators as the user message.
func FormatBrief(forecast float64, signal domain.Signal, record domain.Record) (string, error) {
	indicators, err := Indicators(record)
	if err != nil {
		return "", err
	}
	current, _ := record.Get(domain.FieldPolicyRate)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Recommendation: %s\n", strings.ToUpper(string(signal))))
	sb.WriteString(fmt.Sprintf("Forecast policy rate: %.2f%% (current %.2f%%, change %+.2f pp)\n", forecast, current, forecast-current))
	sb.WriteString("\nKey indicators:\n")
	for _, ind := range indicators {
		sb.WriteString(fmt.Sprintf("  %s: %.2f\n", ind.Label, ind.Value))
	}
	return sb.String(), nil
}
