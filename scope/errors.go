package scope

import "errors"

var (
	// ErrNotInitialized is returned when a context carries no Local, i.e. the
	// caller never attached one with WithLocal or NewContext. Nothing is
	// mutated when it is returned.
	ErrNotInitialized = errors.New("scope: no scope local on context")

	// ErrNoClient is returned when an event is captured but no active client
	// is bound anywhere in the scope chain.
	ErrNoClient = errors.New("scope: no active client bound")

	// ErrEventDropped is returned when the bound client rejects an event.
	ErrEventDropped = errors.New("scope: event dropped by client")
)
