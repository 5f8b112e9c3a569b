package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"ratecast/internal/domain"
	"ratecast/internal/service"
)

// ForecastAPI is the part of the forecast service the HTTP API exposes.
type ForecastAPI interface {
	Evaluate(ctx context.Context) (*service.EvaluationReport, error)
	Forecast(ctx context.Context, req service.ForecastRequest) (*service.ForecastReport, error)
	Variables(ctx context.Context) ([]service.Variable, error)
	Trend(ctx context.Context, name string) (*service.Trend, error)
	Latest(ctx context.Context) (*service.LatestReport, error)
}

type Handler struct {
	tracer    trace.Tracer
	forecasts ForecastAPI
}

func New(tracer trace.Tracer, forecasts ForecastAPI) *Handler {
	return &Handler{
		tracer:    tracer,
		forecasts: forecasts,
	}
}

// RegisterRoutes mounts the API. Routes under /api require the X-API-Key
// header when apiKey is non-empty.
func (h *Handler) RegisterRoutes(r gin.IRouter, apiKey string) {
	r.GET("/health", h.Health)

	api := r.Group("/api", APIKeyAuth(apiKey))
	api.GET("/evaluation", h.GetEvaluation)
	api.POST("/forecast", h.PostForecast)
	api.GET("/variables", h.GetVariables)
	api.GET("/variables/:name", h.GetVariable)
	api.GET("/latest", h.GetLatest)
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch domain.Classify(err) {
	case domain.KindRequest:
		if errors.Is(err, domain.ErrUnknownModel) {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	case domain.KindContract:
		return http.StatusConflict
	case domain.KindCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) abort(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"error": err.Error(),
		"kind":  string(domain.Classify(err)),
	})
}
