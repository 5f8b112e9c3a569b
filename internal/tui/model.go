package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"ratecast/internal/service"
)

// Forecaster is what the dashboard reads from.
type Forecaster interface {
	Evaluate(ctx context.Context) (*service.EvaluationReport, error)
	Forecast(ctx context.Context, req service.ForecastRequest) (*service.ForecastReport, error)
	Variables(ctx context.Context) ([]service.Variable, error)
	Trend(ctx context.Context, name string) (*service.Trend, error)
}

type tab int

const (
	tabEvaluation tab = iota
	tabForecast
	tabTrends
)

var tabNames = []string{"Evaluation", "Forecast", "Trends"}

type (
	evaluationMsg struct {
		report *service.EvaluationReport
		err    error
	}
	forecastMsg struct {
		report *service.ForecastReport
		err    error
	}
	variablesMsg struct {
		vars []service.Variable
		err  error
	}
	trendMsg struct {
		trend *service.Trend
		err   error
	}
)

// Model is the root bubbletea model of the dashboard.
type Model struct {
	ctx context.Context
	svc Forecaster

	keys   keyMap
	help   help.Model
	scores table.Model

	active tab
	width  int
	height int
	user   string

	evaluation *service.EvaluationReport
	forecast   *service.ForecastReport
	trend      *service.Trend
	vars       []service.Variable

	modelIdx int // 0 selects the best model
	varIdx   int
	loading  map[tab]bool
	err      error
}

func NewModel(ctx context.Context, svc Forecaster) *Model {
	scores := table.New(
		table.WithColumns([]table.Column{
			{Title: "Model", Width: 20},
			{Title: "R²", Width: 10},
		}),
		table.WithHeight(4),
		table.WithFocused(false),
	)
	return &Model{
		ctx:     ctx,
		svc:     svc,
		keys:    defaultKeys(),
		help:    help.New(),
		scores:  scores,
		loading: map[tab]bool{tabEvaluation: true, tabForecast: true},
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
}

// SetUser labels the header, e.g. with the SSH session's user.
func (m *Model) SetUser(name string) {
	m.user = name
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadEvaluation(), m.loadForecast(), m.loadVariables())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case evaluationMsg:
		m.loading[tabEvaluation] = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.evaluation = msg.report
		m.scores.SetRows(scoreRows(msg.report))
		return m, nil

	case forecastMsg:
		m.loading[tabForecast] = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.forecast = msg.report
		return m, nil

	case variablesMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.vars = msg.vars
		if len(m.vars) == 0 {
			return m, nil
		}
		m.varIdx = targetIndex(m.vars)
		m.loading[tabTrends] = true
		return m, m.loadTrend(m.vars[m.varIdx].Name)

	case trendMsg:
		m.loading[tabTrends] = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.trend = msg.trend
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Next):
		m.active = (m.active + 1) % tab(len(tabNames))
	case key.Matches(msg, m.keys.Prev):
		m.active = (m.active + tab(len(tabNames)) - 1) % tab(len(tabNames))
	case key.Matches(msg, m.keys.Refresh):
		m.err = nil
		m.loading[tabEvaluation] = true
		m.loading[tabForecast] = true
		return tea.Batch(m.loadEvaluation(), m.loadForecast())
	case key.Matches(msg, m.keys.Model) && m.active == tabForecast:
		options := m.modelOptions()
		m.modelIdx = (m.modelIdx + 1) % len(options)
		m.loading[tabForecast] = true
		return m.loadForecast()
	case key.Matches(msg, m.keys.Down) && m.active == tabTrends && len(m.vars) > 0:
		m.varIdx = (m.varIdx + 1) % len(m.vars)
		m.loading[tabTrends] = true
		return m.loadTrend(m.vars[m.varIdx].Name)
	case key.Matches(msg, m.keys.Up) && m.active == tabTrends && len(m.vars) > 0:
		m.varIdx = (m.varIdx + len(m.vars) - 1) % len(m.vars)
		m.loading[tabTrends] = true
		return m.loadTrend(m.vars[m.varIdx].Name)
	}
	return nil
}

// modelOptions lists the forecast model choices; "" means best by R².
func (m *Model) modelOptions() []string {
	options := []string{""}
	if m.evaluation != nil {
		for _, s := range m.evaluation.Scores {
			options = append(options, s.Model)
		}
	}
	return options
}

func (m *Model) selectedModel() string {
	options := m.modelOptions()
	if m.modelIdx >= len(options) {
		return ""
	}
	return options[m.modelIdx]
}

func (m *Model) loadEvaluation() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		report, err := svc.Evaluate(ctx)
		return evaluationMsg{report: report, err: err}
	}
}

func (m *Model) loadForecast() tea.Cmd {
	ctx, svc, model := m.ctx, m.svc, m.selectedModel()
	return func() tea.Msg {
		report, err := svc.Forecast(ctx, service.ForecastRequest{Model: model})
		return forecastMsg{report: report, err: err}
	}
}

func (m *Model) loadVariables() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		vars, err := svc.Variables(ctx)
		return variablesMsg{vars: vars, err: err}
	}
}

func (m *Model) loadTrend(name string) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		trend, err := svc.Trend(ctx, name)
		return trendMsg{trend: trend, err: err}
	}
}

func targetIndex(vars []service.Variable) int {
	for i, v := range vars {
		if v.Target {
			return i
		}
	}
	return 0
}
