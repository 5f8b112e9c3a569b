package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"ratecast/internal/service"
)

const monthLayout = "2006-01"

// Forecaster is the service surface the tools call into.
type Forecaster interface {
	Evaluate(ctx context.Context) (*service.EvaluationReport, error)
	Forecast(ctx context.Context, req service.ForecastRequest) (*service.ForecastReport, error)
	Variables(ctx context.Context) ([]service.Variable, error)
	Trend(ctx context.Context, name string) (*service.Trend, error)
}

type EvaluateInput struct{}

type ModelScore struct {
	Model string  `json:"model"`
	R2    float64 `json:"r2"`
}

type EvaluateOutput struct {
	RunID     string       `json:"run_id"`
	Target    string       `json:"target"`
	Rows      int          `json:"rows"`
	TrainRows int          `json:"train_rows"`
	TestRows  int          `json:"test_rows"`
	TestFrom  string       `json:"test_from"`
	TestTo    string       `json:"test_to"`
	BestModel string       `json:"best_model"`
	BestR2    float64      `json:"best_r2"`
	Scores    []ModelScore `json:"scores"`
}

type ForecastInput struct {
	Model     string             `json:"model,omitempty" jsonschema:"model to use: Random Forest, Linear Regression or XGBoost; defaults to the best by R²"`
	Overrides map[string]float64 `json:"overrides,omitempty" jsonschema:"scenario values keyed by variable name, applied to the latest month"`
}

type Indicator struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type ForecastOutput struct {
	Model       string      `json:"model"`
	BestModel   string      `json:"best_model"`
	AsOf        string      `json:"as_of"`
	Forecast    float64     `json:"forecast"`
	CurrentRate float64     `json:"current_rate"`
	Delta       float64     `json:"delta"`
	Signal      string      `json:"signal"`
	Indicators  []Indicator `json:"indicators"`
	Commentary  string      `json:"commentary"`
}

type TrendInput struct {
	Name string `json:"name" jsonschema:"variable name, e.g. Inflation_Annual or BoZ_Policy_Rate"`
}

type TrendPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

type TrendOutput struct {
	Name   string       `json:"name"`
	Label  string       `json:"label"`
	Points []TrendPoint `json:"points"`
}

type VariablesInput struct{}

type VariableInfo struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Target bool   `json:"target"`
}

type VariablesOutput struct {
	Variables []VariableInfo `json:"variables"`
}

type tools struct {
	tracer trace.Tracer
	logger zerolog.Logger
	svc    Forecaster
}

// NewServer builds an MCP server exposing the forecaster as tools.
func NewServer(tracer trace.Tracer, logger zerolog.Logger, svc Forecaster, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "ratecast", Version: version}, nil)
	Register(server, tracer, logger, svc)
	return server
}

func Register(server *mcp.Server, tracer trace.Tracer, logger zerolog.Logger, svc Forecaster) {
	t := &tools{
		tracer: tracer,
		logger: logger.With().Str("component", "mcp").Logger(),
		svc:    svc,
	}
	mcp.AddTool(server, &mcp.Tool{
		Name:        "evaluate_models",
		Description: "Train Random Forest, Linear Regression and XGBoost on the oldest 80% of months and report R² on the newest 20%.",
	}, t.evaluate)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "forecast_policy_rate",
		Description: "Forecast the Bank of Zambia policy rate for the latest month, optionally with scenario overrides, and return a Raise/Lower/Hold signal with commentary.",
	}, t.forecast)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "variable_trend",
		Description: "Return the monthly series of one macroeconomic variable.",
	}, t.trend)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_variables",
		Description: "List the macroeconomic variables in the dataset.",
	}, t.variables)
}

func (t *tools) evaluate(ctx context.Context, _ *mcp.CallToolRequest, _ EvaluateInput) (*mcp.CallToolResult, EvaluateOutput, error) {
	ctx, span := t.tracer.Start(ctx, "mcp.evaluate-models")
	defer span.End()

	report, err := t.svc.Evaluate(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, EvaluateOutput{}, err
	}
	out := EvaluateOutput{
		RunID:     report.RunID,
		Target:    report.Target,
		Rows:      report.Rows,
		TrainRows: report.Split.TrainRows,
		TestRows:  report.Split.TestRows,
		TestFrom:  report.Split.TestFrom.Format(monthLayout),
		TestTo:    report.Split.TestTo.Format(monthLayout),
		BestModel: report.Best.Model,
		BestR2:    report.Best.R2,
		Scores:    make([]ModelScore, 0, len(report.Scores)),
	}
	for _, s := range report.Scores {
		out.Scores = append(out.Scores, ModelScore{Model: s.Model, R2: s.R2})
	}
	return nil, out, nil
}

func (t *tools) forecast(ctx context.Context, _ *mcp.CallToolRequest, in ForecastInput) (*mcp.CallToolResult, ForecastOutput, error) {
	ctx, span := t.tracer.Start(ctx, "mcp.forecast-policy-rate")
	defer span.End()
	span.SetAttributes(attribute.String("ml.model", in.Model))

	report, err := t.svc.Forecast(ctx, service.ForecastRequest{Model: in.Model, Overrides: in.Overrides})
	if err != nil {
		span.RecordError(err)
		return nil, ForecastOutput{}, err
	}
	out := ForecastOutput{
		Model:       report.Model,
		BestModel:   report.BestModel,
		AsOf:        report.AsOf.Format(monthLayout),
		Forecast:    report.Forecast,
		CurrentRate: report.CurrentRate,
		Delta:       report.Delta,
		Signal:      string(report.Signal),
		Indicators:  make([]Indicator, 0, len(report.Indicators)),
		Commentary:  report.Commentary,
	}
	for _, ind := range report.Indicators {
		out.Indicators = append(out.Indicators, Indicator{Label: ind.Label, Value: ind.Value})
	}
	t.logger.Debug().Str("model", out.Model).Str("signal", out.Signal).Msg("forecast tool called")
	return nil, out, nil
}

func (t *tools) trend(ctx context.Context, _ *mcp.CallToolRequest, in TrendInput) (*mcp.CallToolResult, TrendOutput, error) {
	ctx, span := t.tracer.Start(ctx, "mcp.variable-trend")
	defer span.End()
	span.SetAttributes(attribute.String("dataset.field", in.Name))

	trend, err := t.svc.Trend(ctx, in.Name)
	if err != nil {
		span.RecordError(err)
		return nil, TrendOutput{}, err
	}
	out := TrendOutput{Name: trend.Name, Label: trend.Label, Points: make([]TrendPoint, 0, len(trend.Points))}
	for _, p := range trend.Points {
		out.Points = append(out.Points, TrendPoint{Month: p.Month.Format(monthLayout), Value: p.Value})
	}
	return nil, out, nil
}

func (t *tools) variables(ctx context.Context, _ *mcp.CallToolRequest, _ VariablesInput) (*mcp.CallToolResult, VariablesOutput, error) {
	ctx, span := t.tracer.Start(ctx, "mcp.list-variables")
	defer span.End()

	vars, err := t.svc.Variables(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, VariablesOutput{}, err
	}
	out := VariablesOutput{Variables: make([]VariableInfo, 0, len(vars))}
	for _, v := range vars {
		out.Variables = append(out.Variables, VariableInfo{Name: v.Name, Label: v.Label, Target: v.Target})
	}
	return nil, out, nil
}
