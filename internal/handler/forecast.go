package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"ratecast/internal/domain"
	"ratecast/internal/service"
)

// GetEvaluation godoc
// @Summary      Evaluate the model bank
// @Description  Trains every model on the oldest 80% of months and scores it by R² on the newest 20%
// @Tags         models
// @Produce      json
// @Success      200  {object}  service.EvaluationReport
// @Failure      500  {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/evaluation [get]
func (h *Handler) GetEvaluation(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-evaluation")
	defer span.End()

	report, err := h.forecasts.Evaluate(ctx)
	if err != nil {
		span.RecordError(err)
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// PostForecast godoc
// @Summary      Forecast the policy rate
// @Description  Forecasts the policy rate for the latest month with optional scenario overrides and returns a Raise/Lower/Hold signal with commentary
// @Tags         forecast
// @Accept       json
// @Produce      json
// @Param        request  body  service.ForecastRequest  false  "Model and scenario overrides"
// @Success      200  {object}  service.ForecastReport
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/forecast [post]
func (h *Handler) PostForecast(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.post-forecast")
	defer span.End()

	// An empty body asks for the best model on the latest month.
	var req service.ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	span.SetAttributes(
		attribute.String("ml.model", req.Model),
		attribute.Int("forecast.overrides", len(req.Overrides)),
	)

	report, err := h.forecasts.Forecast(ctx, req)
	if err != nil {
		span.RecordError(err)
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetVariables godoc
// @Summary      List dataset variables
// @Description  Returns every macroeconomic variable in the dataset
// @Tags         variables
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Security     ApiKeyAuth
// @Router       /api/variables [get]
func (h *Handler) GetVariables(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-variables")
	defer span.End()

	vars, err := h.forecasts.Variables(ctx)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"variables": vars})
}

// GetVariable godoc
// @Summary      Variable trend
// @Description  Returns the monthly series of one variable
// @Tags         variables
// @Produce      json
// @Param        name  path  string  true  "Variable name (e.g., Inflation_Annual, BoZ_Policy_Rate)"
// @Success      200  {object}  service.Trend
// @Failure      404  {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/variables/{name} [get]
func (h *Handler) GetVariable(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-variable")
	defer span.End()

	name := c.Param("name")
	span.SetAttributes(attribute.String("dataset.field", name))

	trend, err := h.forecasts.Trend(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownField) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "unknown variable: " + name,
				"variables": domain.FieldNames(),
			})
			return
		}
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

// GetLatest godoc
// @Summary      Latest observation
// @Description  Returns the most recent complete month of the dataset
// @Tags         variables
// @Produce      json
// @Success      200  {object}  service.LatestReport
// @Failure      500  {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/latest [get]
func (h *Handler) GetLatest(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-latest")
	defer span.End()

	latest, err := h.forecasts.Latest(ctx)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, latest)
}
