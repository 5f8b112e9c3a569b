package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"ratecast/internal/service"
)

const monthLayout = "Jan 2006"

func (m *Model) View() string {
	var b strings.Builder

	header := titleStyle.Render("ratecast · BoZ policy rate")
	if m.user != "" {
		header += mutedStyle.Render("  " + m.user)
	}
	b.WriteString(header + "\n\n")
	b.WriteString(m.renderTabs() + "\n")

	switch m.active {
	case tabEvaluation:
		b.WriteString(m.viewEvaluation())
	case tabForecast:
		b.WriteString(m.viewForecast())
	case tabTrends:
		b.WriteString(m.viewTrends())
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("error: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.active {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m *Model) viewEvaluation() string {
	if m.loading[tabEvaluation] {
		return mutedStyle.Render("Training models…") + "\n"
	}
	r := m.evaluation
	if r == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render(field("Target", r.Target)) + "\n")
	b.WriteString(field("Rows", fmt.Sprintf("%d (%d dropped)", r.Rows, r.Dropped)) + "\n")
	b.WriteString(field("Train", fmt.Sprintf("%s – %s (%d)", r.Split.TrainFrom.Format(monthLayout), r.Split.TrainTo.Format(monthLayout), r.Split.TrainRows)) + "\n")
	b.WriteString(field("Test", fmt.Sprintf("%s – %s (%d)", r.Split.TestFrom.Format(monthLayout), r.Split.TestTo.Format(monthLayout), r.Split.TestRows)) + "\n\n")
	b.WriteString(m.scores.View() + "\n\n")
	b.WriteString(field("Best model", fmt.Sprintf("%s (R² %.4f)", r.Best.Model, r.Best.R2)) + "\n")

	for _, me := range r.Models {
		if me.Model != r.Best.Model || len(me.Series) == 0 {
			continue
		}
		actual := make([]float64, len(me.Series))
		predicted := make([]float64, len(me.Series))
		for i, p := range me.Series {
			actual[i], predicted[i] = p.Actual, p.Predicted
		}
		b.WriteString(sectionStyle.Render(labelStyle.Render("Actual    ")+sparkline(actual)) + "\n")
		b.WriteString(labelStyle.Render("Predicted ") + sparkline(predicted) + "\n")
	}
	return b.String()
}

func (m *Model) viewForecast() string {
	if m.loading[tabForecast] {
		return mutedStyle.Render("Forecasting…") + "\n"
	}
	r := m.forecast
	if r == nil {
		return ""
	}
	selected := m.selectedModel()
	if selected == "" {
		selected = "best (" + r.BestModel + ")"
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Monetary Policy Recommendation: "+signalStyle(r.Signal).Render(strings.ToUpper(string(r.Signal)))) + "\n\n")
	b.WriteString(field("Model", selected) + "\n")
	b.WriteString(field("As of", r.AsOf.Format(monthLayout)) + "\n")
	b.WriteString(field("Forecast", fmt.Sprintf("%.2f%%", r.Forecast)) + "\n")
	b.WriteString(field("Current", fmt.Sprintf("%.2f%% (%+.2f pp)", r.CurrentRate, r.Delta)) + "\n")

	rows := make([]table.Row, 0, len(r.Indicators))
	for _, ind := range r.Indicators {
		rows = append(rows, table.Row{ind.Label, fmt.Sprintf("%.2f", ind.Value)})
	}
	indicators := table.New(
		table.WithColumns([]table.Column{
			{Title: "Indicator", Width: 28},
			{Title: "Value", Width: 14},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithFocused(false),
	)
	b.WriteString(sectionStyle.Render(indicators.View()) + "\n")

	width := m.width - 4
	if width < 40 {
		width = 80
	}
	b.WriteString(sectionStyle.Width(width).Render(r.Commentary) + "\n")
	return b.String()
}

func (m *Model) viewTrends() string {
	if len(m.vars) == 0 {
		return mutedStyle.Render("Loading variables…") + "\n"
	}
	var b strings.Builder
	for i, v := range m.vars {
		cursor := "  "
		if i == m.varIdx {
			cursor = "> "
		}
		line := cursor + v.Label
		if i == m.varIdx {
			line = valueStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if m.loading[tabTrends] || m.trend == nil {
		return b.String() + "\n" + mutedStyle.Render("Loading series…") + "\n"
	}
	pts := m.trend.Points
	values := make([]float64, len(pts))
	for i, p := range pts {
		values[i] = p.Value
	}
	b.WriteString(sectionStyle.Render(valueStyle.Render(m.trend.Label)) + "\n")
	b.WriteString(sparkline(values) + "\n")
	if len(pts) > 0 {
		lo, hi := minMax(values)
		last := pts[len(pts)-1]
		b.WriteString(field("Range", fmt.Sprintf("%s – %s", pts[0].Month.Format(monthLayout), last.Month.Format(monthLayout))) + "\n")
		b.WriteString(field("Min / Max", fmt.Sprintf("%.2f / %.2f", lo, hi)) + "\n")
		b.WriteString(field("Latest", fmt.Sprintf("%.2f", last.Value)) + "\n")
	}
	return b.String()
}

func field(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-12s", label)) + valueStyle.Render(value)
}

func scoreRows(r *service.EvaluationReport) []table.Row {
	if r == nil {
		return nil
	}
	rows := make([]table.Row, 0, len(r.Scores))
	for _, s := range r.Scores {
		name := s.Model
		if s.Model == r.Best.Model {
			name += " ★"
		}
		rows = append(rows, table.Row{name, fmt.Sprintf("%.4f", s.R2)})
	}
	return rows
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// sparkline renders values as one row of block characters scaled between
// their minimum and maximum.
func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := minMax(values)
	span := hi - lo
	out := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if span > 0 {
			idx = int(math.Round((v - lo) / span * float64(len(sparkBlocks)-1)))
		}
		out[i] = sparkBlocks[idx]
	}
	return string(out)
}

func minMax(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
