package client

import "errors"

// ErrInvalidConfig is returned when Config fails validation.
var ErrInvalidConfig = errors.New("invalid client config")
