package metrics

// DefaultAddress is the listen address used when Config.Address is nil.
const DefaultAddress = ":9090"

// DefaultNamespace prefixes every metric name when Config.Namespace is empty.
const DefaultNamespace = "scopekit"

// Config controls the metrics registry and its HTTP endpoint.
type Config struct {
	// Address is the listen address of the /metrics endpoint. Nil means
	// DefaultAddress; an empty string disables the server while keeping the
	// registry usable.
	Address *string `envconfig:"METRICS_ADDRESS"`

	// ServiceName is attached to every metric as the constant "service" label.
	ServiceName string `envconfig:"METRICS_SERVICE_NAME"`

	// Namespace prefixes metric names, e.g. "scopekit_operations_total".
	Namespace string `envconfig:"METRICS_NAMESPACE" default:"scopekit"`

	// DisableRuntimeCollectors skips the Go runtime and process collectors.
	DisableRuntimeCollectors bool `envconfig:"METRICS_DISABLE_RUNTIME"`
}

// Ptr returns a pointer to s, for setting Config.Address.
//
//	cfg := metrics.Config{Address: metrics.Ptr("")} // registry only, no server
func Ptr(s string) *string {
	return &s
}
