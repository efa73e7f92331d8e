package metrics

import (
	"net/http"

	"github.com/aalemi-dev/scopekit/observability"
)

// Collector is the Prometheus-backed observer handed to the scope manager
// and the tracer.
type Collector interface {
	observability.Observer

	// Handler serves the registry in the Prometheus exposition format.
	Handler() http.Handler
}
