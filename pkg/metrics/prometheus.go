package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exports pipeline, inference and error metrics to Prometheus.
type Recorder struct {
	pipelineDuration prometheus.Histogram
	fitDuration      *prometheus.HistogramVec
	modelScore       *prometheus.GaugeVec
	signalsTotal     *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
}

// New registers the ratecast collectors with reg. A nil reg uses the default
// registry.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Recorder{
		pipelineDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ratecast_pipeline_duration_seconds",
				Help:    "Duration of a full train-and-evaluate run in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		fitDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ratecast_model_fit_duration_seconds",
				Help:    "Duration of fitting one model in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"model"},
		),
		modelScore: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ratecast_model_r2",
				Help: "Coefficient of determination of the most recent evaluation",
			},
			[]string{"model"},
		),
		signalsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ratecast_signals_total",
				Help: "Total number of policy signals issued",
			},
			[]string{"model", "signal"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ratecast_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"kind"},
		),
	}
}

func (r *Recorder) ObservePipeline(d time.Duration) {
	r.pipelineDuration.Observe(d.Seconds())
}

func (r *Recorder) ObserveFit(model string, d time.Duration) {
	r.fitDuration.WithLabelValues(model).Observe(d.Seconds())
}

func (r *Recorder) SetScore(model string, r2 float64) {
	r.modelScore.WithLabelValues(model).Set(r2)
}

// RecordSignal counts a signal issued by a model.
func (r *Recorder) RecordSignal(model, signal string) {
	r.signalsTotal.WithLabelValues(model, signal).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
