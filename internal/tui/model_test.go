package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ratecast/internal/commentary"
	"ratecast/internal/dataset"
	"ratecast/internal/domain"
	"ratecast/internal/ml/inference"
	"ratecast/internal/ml/training"
	"ratecast/internal/service"
)

type stubForecaster struct {
	forecastReqs []service.ForecastRequest
	trendNames   []string
	evalErr      error
}

func (s *stubForecaster) Evaluate(ctx context.Context) (*service.EvaluationReport, error) {
	if s.evalErr != nil {
		return nil, s.evalErr
	}
	scores := []training.Score{{Model: "Random Forest", R2: 0.81}, {Model: "XGBoost", R2: 0.92}}
	month := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	return &service.EvaluationReport{
		Target: domain.FieldPolicyRate,
		Rows:   100,
		Split:  service.Split{TrainRows: 80, TestRows: 20, TrainFrom: month, TrainTo: month, TestFrom: month, TestTo: month},
		Scores: scores,
		Best:   scores[1],
		Models: []service.ModelEvaluation{{
			Model:  "XGBoost",
			R2:     0.92,
			Series: []training.EvaluationPoint{{Month: month, Actual: 9, Predicted: 9.1}, {Month: month, Actual: 10, Predicted: 9.8}},
		}},
	}, nil
}

func (s *stubForecaster) Forecast(ctx context.Context, req service.ForecastRequest) (*service.ForecastReport, error) {
	s.forecastReqs = append(s.forecastReqs, req)
	model := req.Model
	if model == "" {
		model = "XGBoost"
	}
	return &service.ForecastReport{
		Result:     inference.Result{Model: model, Forecast: 14.75, CurrentRate: 14.5, Delta: 0.25, Signal: domain.SignalRaise},
		BestModel:  "XGBoost",
		AsOf:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Indicators: []commentary.Indicator{{Field: domain.FieldInflation, Label: "Inflation (Annual %)", Value: 15.2}},
		Commentary: "The model indicates a **Raise** in the policy rate to approximately 14.75%.",
	}, nil
}

func (s *stubForecaster) Variables(ctx context.Context) ([]service.Variable, error) {
	return []service.Variable{
		{Name: domain.FieldInflation, Label: "Inflation (Annual %)"},
		{Name: domain.FieldPolicyRate, Label: "BoZ Policy Rate (%)", Target: true},
	}, nil
}

func (s *stubForecaster) Trend(ctx context.Context, name string) (*service.Trend, error) {
	s.trendNames = append(s.trendNames, name)
	f, _ := domain.LookupField(name)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &service.Trend{Name: name, Label: f.Label, Points: []dataset.Point{
		{Month: start, Value: 1}, {Month: start.AddDate(0, 1, 0), Value: 2}, {Month: start.AddDate(0, 2, 0), Value: 3},
	}}, nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, svc *stubForecaster) *Model {
	t.Helper()
	m := NewModel(context.Background(), svc)
	m.SetSize(100, 40)
	m.Update(m.loadEvaluation()())
	m.Update(m.loadForecast()())
	return m
}

func TestEvaluationTab(t *testing.T) {
	m := loaded(t, &stubForecaster{})
	view := m.View()
	for _, want := range []string{"Evaluation", "Random Forest", "0.9200", "Best model", "XGBoost (R² 0.9200)"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestTabNavigation(t *testing.T) {
	m := loaded(t, &stubForecaster{})

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.active != tabForecast {
		t.Fatalf("expected forecast tab, got %d", m.active)
	}
	view := m.View()
	for _, want := range []string{"RAISE", "14.75%", "+0.25 pp", "Inflation (Annual %)", "best (XGBoost)"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in forecast view:\n%s", want, view)
		}
	}

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.active != tabTrends {
		t.Fatalf("expected wrap-around to trends tab, got %d", m.active)
	}
}

func TestCycleModelRequestsForecast(t *testing.T) {
	svc := &stubForecaster{}
	m := loaded(t, svc)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	_, cmd := m.Update(runes("m"))
	if cmd == nil {
		t.Fatal("expected forecast command")
	}
	m.Update(cmd())
	last := svc.forecastReqs[len(svc.forecastReqs)-1]
	if last.Model != "Random Forest" {
		t.Fatalf("expected first scored model, got %q", last.Model)
	}
	if !strings.Contains(m.View(), "Random Forest") {
		t.Fatal("expected selected model in view")
	}

	m.Update(runes("m"))
	m.Update(runes("m"))
	if m.selectedModel() != "" {
		t.Fatalf("expected cycle back to best, got %q", m.selectedModel())
	}
}

func TestTrendsTab(t *testing.T) {
	svc := &stubForecaster{}
	m := loaded(t, svc)

	_, cmd := m.Update(m.loadVariables()())
	if cmd == nil {
		t.Fatal("expected trend command for target variable")
	}
	m.Update(cmd())
	if len(svc.trendNames) != 1 || svc.trendNames[0] != domain.FieldPolicyRate {
		t.Fatalf("expected target trend first, got %v", svc.trendNames)
	}

	m.active = tabTrends
	view := m.View()
	for _, want := range []string{"> BoZ Policy Rate (%)", "▁▅█", "1.00 / 3.00"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in trends view:\n%s", want, view)
		}
	}

	_, cmd = m.Update(runes("j"))
	m.Update(cmd())
	if svc.trendNames[len(svc.trendNames)-1] != domain.FieldInflation {
		t.Fatalf("expected wrap to first variable, got %v", svc.trendNames)
	}
}

func TestErrorIsRendered(t *testing.T) {
	m := loaded(t, &stubForecaster{evalErr: errors.New("dataset is empty after cleaning")})
	if !strings.Contains(m.View(), "dataset is empty after cleaning") {
		t.Fatal("expected error in view")
	}
}

func TestQuit(t *testing.T) {
	m := NewModel(context.Background(), &stubForecaster{})
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestSparkline(t *testing.T) {
	if got := sparkline([]float64{1, 2, 3}); got != "▁▅█" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := sparkline([]float64{4, 4}); got != "▁▁" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	if sparkline(nil) != "" {
		t.Fatal("expected empty sparkline")
	}
}
