package engine

import (
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rushteam/dinekit/core"
)

type metrics struct {
	queries   *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	buildStep *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dinekit",
			Subsystem: "engine",
			Name:      "queries_total",
		}, []string{"mode", "outcome"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dinekit",
			Subsystem: "engine",
			Name:      "query_seconds",
		}, []string{"mode"}),
		buildStep: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dinekit",
			Subsystem: "engine",
			Name:      "build_step_seconds",
		}, []string{"step"}),
	}
}

// unknownMode 是非法模式在指标中的 mode 取值。
const unknownMode = "unknown"

func (m *metrics) observeQuery(mode Mode, cost time.Duration, n int, err error) {
	label := modeLabel(mode)
	m.latency.WithLabelValues(label).Observe(cost.Seconds())
	m.queries.WithLabelValues(label, outcome(n, err)).Inc()
}

func modeLabel(mode Mode) string {
	if slices.Contains(Modes(), mode) {
		return string(mode)
	}
	return unknownMode
}

func outcome(n int, err error) string {
	switch {
	case err == nil && n == 0:
		return "empty"
	case err == nil:
		return "ok"
	case core.IsInvalidInput(err):
		return "invalid_input"
	case core.IsNotFound(err):
		return "not_found"
	default:
		return "error"
	}
}
