package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

func provideMetrics() (*Metrics, error) {
	return New(prometheus.DefaultRegisterer)
}

func provideHTTPMetrics() (*HTTPMetrics, error) {
	return NewHTTPMetrics(prometheus.DefaultRegisterer)
}

// Module registers the ledger and HTTP instruments on the default
// prometheus registry, served by the /metrics endpoint.
var Module = fx.Module("observability.metrics",
	fx.Provide(provideMetrics),
	fx.Provide(provideHTTPMetrics),
)
