// Package event defines the diagnostic event assembled from scopes and spans
// and handed to a client for transmission.
//
// An Event is a plain data structure. Scopes write into it through
// scope.Scope.ApplyToEvent, finished transactions produce one through
// tracing.Span.ToEvent, and a client.Client transmits it. Every value stored
// here that a scope also owns (breadcrumbs, user, contexts) has a Clone
// method so ownership never leaks between a scope and the events built from
// it.
package event
