// Package scope holds the ambient diagnostic context that is merged into
// every captured event.
//
// # Tiers
//
// Data lives on three tiers, consulted in this order when an event is
// captured:
//
//   - the current scope, pushed by WithScope or PushScope for the length of
//     one block;
//   - the isolation scope, one per Local, created empty on first use and
//     targeted by the convenience setters (SetTag, SetUser, AddBreadcrumb);
//   - the global scope, one per Manager, created lazily under a mutex.
//
// Values already on an event win over scope values, and inner tiers win
// over outer ones. Breadcrumbs are the exception: they are concatenated,
// and a breadcrumb a scope inherited through a fork is reported once.
//
// # Locals and contexts
//
// A Local is the per-execution state: one per request, job or goroutine
// tree. It travels on a context.Context:
//
//	ctx, local := scope.NewContext(ctx, mgr)
//	local.SetTag("tenant", tenantID)
//
//	_ = scope.WithScope(ctx, func(s *scope.Scope) {
//	    s.SetTag("step", "charge")
//	    _, _ = scope.CaptureMessage(ctx, "charge declined", event.LevelWarning)
//	})
//
// Context-level helpers return ErrNotInitialized when ctx carries no Local
// and mutate nothing.
//
// # Guards
//
// PushScope and PushIsolationScope return a Guard whose Close restores the
// previous state. Close is idempotent and is usually deferred:
//
//	g := local.PushScope()
//	defer g.Close()
//
// WithScope and WithIsolationScope are the callback forms and restore state
// even when the callback panics.
package scope
