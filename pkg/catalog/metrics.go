// Prometheus instrumentation for outbound catalog calls. Counters are
// registered on the default registry and exposed by the /metrics endpoint in
// the handlers package.

package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK             = "ok"
	outcomeAuthError      = "auth_error"
	outcomeTransportError = "transport_error"
	outcomeAPIError       = "api_error"
	outcomeDecodeError    = "decode_error"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "musicscout",
	Subsystem: "catalog",
	Name:      "requests_total",
	Help:      "Outbound catalog API calls by operation and outcome.",
}, []string{"operation", "outcome"})

func observe(op, outcome string) {
	requestsTotal.WithLabelValues(op, outcome).Inc()
}
