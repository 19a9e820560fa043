package llm

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metricsLLM records request counts, latency, and token usage to
// Prometheus.
type metricsLLM struct {
	next     CoreLLM
	provider string

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	tokens   *prometheus.CounterVec
}

// MetricsMiddleware creates middleware that registers and records request
// metrics against the given registerer. The provider label distinguishes
// chains when several clients share a registry.
func MetricsMiddleware(reg prometheus.Registerer, provider string) Middleware {
	factory := promauto.With(reg)

	requests := factory.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_requests_total",
		Help: "Completion requests by provider, model, and outcome.",
	}, []string{"provider", "model", "status"})

	latency := factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "llm_request_duration_seconds",
		Help:    "Completion request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider", "model"})

	tokens := factory.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_tokens_total",
		Help: "Token usage by provider, model, and direction.",
	}, []string{"provider", "model", "direction"})

	return func(next CoreLLM) CoreLLM {
		return &metricsLLM{
			next:     next,
			provider: provider,
			requests: requests,
			latency:  latency,
			tokens:   tokens,
		}
	}
}

// DoRequest forwards the request and records its outcome.
func (m *metricsLLM) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	start := time.Now()
	response, tokensIn, tokensOut, err := m.next.DoRequest(ctx, prompt, opts)

	model := m.next.GetModel()
	m.latency.WithLabelValues(m.provider, model).Observe(time.Since(start).Seconds())
	m.requests.WithLabelValues(m.provider, model, m.status(ctx, err)).Inc()

	if err == nil {
		m.tokens.WithLabelValues(m.provider, model, "input").Add(float64(tokensIn))
		m.tokens.WithLabelValues(m.provider, model, "output").Add(float64(tokensOut))
	}

	return response, tokensIn, tokensOut, err
}

func (m *metricsLLM) status(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}

func (m *metricsLLM) GetModel() string  { return m.next.GetModel() }
func (m *metricsLLM) SetModel(s string) { m.next.SetModel(s) }
