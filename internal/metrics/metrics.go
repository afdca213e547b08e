package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SourceLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fxconv_source_loads_total",
			Help: "Rate document loads by source kind and result",
		},
		[]string{"source", "result"},
	)

	RebasesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fxconv_rebases_total",
			Help: "Base currency changes applied to the rate table",
		},
	)

	ConversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fxconv_conversions_total",
			Help: "Conversion and cross rate queries by result",
		},
		[]string{"result"},
	)

	TableEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fxconv_table_entries",
			Help: "Currencies in the live rate table",
		},
	)

	TableAsOfSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fxconv_table_as_of_seconds",
			Help: "As-of date of the live rate table as unix time",
		},
	)
)

// ObserveConversion counts a query outcome.
func ObserveConversion(err error) {
	if err != nil {
		ConversionsTotal.WithLabelValues("error").Inc()
		return
	}
	ConversionsTotal.WithLabelValues("ok").Inc()
}
