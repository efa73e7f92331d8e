package tracing

import "errors"

// ErrNotTransaction is logged when a transaction-only operation receives a
// child span. It is never returned.
var ErrNotTransaction = errors.New("tracing: span is not a transaction")
