package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"ratecast/internal/commentary"
	"ratecast/internal/dataset"
	"ratecast/internal/domain"
	"ratecast/internal/ml/inference"
	"ratecast/internal/ml/training"
	"ratecast/internal/service"
)

type stubForecaster struct {
	lastReq service.ForecastRequest
}

func (s *stubForecaster) Evaluate(ctx context.Context) (*service.EvaluationReport, error) {
	scores := []training.Score{{Model: "Linear Regression", R2: 0.64}, {Model: "XGBoost", R2: 0.88}}
	return &service.EvaluationReport{
		RunID:  "run-7",
		Target: domain.FieldPolicyRate,
		Rows:   50,
		Split: service.Split{
			TrainRows: 40, TestRows: 10,
			TestFrom: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
			TestTo:   time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
		},
		Scores: scores,
		Best:   scores[1],
	}, nil
}

func (s *stubForecaster) Forecast(ctx context.Context, req service.ForecastRequest) (*service.ForecastReport, error) {
	s.lastReq = req
	if req.Model == "SVR" {
		return nil, fmt.Errorf("%w: SVR", domain.ErrUnknownModel)
	}
	return &service.ForecastReport{
		Result:     inference.Result{Model: "XGBoost", Forecast: 13.9, CurrentRate: 14, Delta: -0.1, Signal: domain.SignalLower},
		BestModel:  "XGBoost",
		AsOf:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Indicators: []commentary.Indicator{{Label: "Inflation (Annual %)", Value: 12.1}},
		Commentary: "The model indicates a **Lower**",
	}, nil
}

func (s *stubForecaster) Variables(ctx context.Context) ([]service.Variable, error) {
	return []service.Variable{{Name: domain.FieldPolicyRate, Label: "BoZ Policy Rate (%)", Target: true}}, nil
}

func (s *stubForecaster) Trend(ctx context.Context, name string) (*service.Trend, error) {
	return &service.Trend{Name: name, Label: "USD/ZMW", Points: []dataset.Point{
		{Month: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Value: 25.1},
	}}, nil
}

func connect(t *testing.T, svc Forecaster) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	server := NewServer(trace.NewNoopTracerProvider().Tracer("test"), zerolog.Nop(), svc, "test")

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func decode(t *testing.T, res *mcp.CallToolResult, out any) {
	t.Helper()
	if res.IsError {
		t.Fatalf("unexpected tool error: %+v", res.Content)
	}
	raw, err := json.Marshal(res.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode structured content: %v", err)
	}
}

func TestListTools(t *testing.T) {
	cs := connect(t, &stubForecaster{})
	res, err := cs.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	names := map[string]bool{}
	for _, tool := range res.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"evaluate_models", "forecast_policy_rate", "variable_trend", "list_variables"} {
		if !names[want] {
			t.Errorf("expected tool %s, got %v", want, names)
		}
	}
}

func TestEvaluateModelsTool(t *testing.T) {
	cs := connect(t, &stubForecaster{})
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: "evaluate_models", Arguments: map[string]any{}})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	var out EvaluateOutput
	decode(t, res, &out)
	if out.BestModel != "XGBoost" || out.BestR2 != 0.88 || len(out.Scores) != 2 {
		t.Fatalf("unexpected output %+v", out)
	}
	if out.TestFrom != "2023-03" || out.TestTo != "2023-12" {
		t.Fatalf("unexpected test window %s..%s", out.TestFrom, out.TestTo)
	}
}

func TestForecastPolicyRateTool(t *testing.T) {
	svc := &stubForecaster{}
	cs := connect(t, svc)
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "forecast_policy_rate",
		Arguments: map[string]any{
			"model":     "XGBoost",
			"overrides": map[string]any{domain.FieldInflation: 15.2},
		},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	var out ForecastOutput
	decode(t, res, &out)
	if out.Signal != "Lower" || out.AsOf != "2024-05" || len(out.Indicators) != 1 {
		t.Fatalf("unexpected output %+v", out)
	}
	if svc.lastReq.Model != "XGBoost" || svc.lastReq.Overrides[domain.FieldInflation] != 15.2 {
		t.Fatalf("request not forwarded: %+v", svc.lastReq)
	}
}

func TestForecastToolReportsServiceErrors(t *testing.T) {
	cs := connect(t, &stubForecaster{})
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "forecast_policy_rate",
		Arguments: map[string]any{"model": "SVR"},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool error result for unknown model")
	}
}

func TestVariableTrendTool(t *testing.T) {
	cs := connect(t, &stubForecaster{})
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "variable_trend",
		Arguments: map[string]any{"name": domain.FieldExchangeRate},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	var out TrendOutput
	decode(t, res, &out)
	if out.Name != domain.FieldExchangeRate || len(out.Points) != 1 || out.Points[0].Month != "2024-01" {
		t.Fatalf("unexpected output %+v", out)
	}
}
