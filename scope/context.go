package scope

import (
	"context"

	"github.com/aalemi-dev/scopekit/event"
	"github.com/aalemi-dev/scopekit/logger"
)

type localKey struct{}

// WithLocal returns ctx carrying l. The Local is also registered as the
// logger's trace source, so *WithContext log entries carry its trace ids.
func WithLocal(ctx context.Context, l *Local) context.Context {
	ctx = context.WithValue(ctx, localKey{}, l)
	return logger.WithTraceSource(ctx, l)
}

// NewContext creates a Local from m and attaches it to ctx.
//
//	func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    ctx, _ := scope.NewContext(r.Context(), h.scopes)
//	    h.next.ServeHTTP(w, r.WithContext(ctx))
//	}
func NewContext(ctx context.Context, m *Manager) (context.Context, *Local) {
	l := m.NewLocal()
	return WithLocal(ctx, l), l
}

// LocalFromContext returns the Local carried by ctx, or ErrNotInitialized.
func LocalFromContext(ctx context.Context) (*Local, error) {
	if ctx == nil {
		return nil, ErrNotInitialized
	}
	l, ok := ctx.Value(localKey{}).(*Local)
	if !ok || l == nil {
		return nil, ErrNotInitialized
	}
	return l, nil
}

// ConfigureScope runs fn against the isolation scope of ctx's Local.
func ConfigureScope(ctx context.Context, fn func(s *Scope)) error {
	l, err := LocalFromContext(ctx)
	if err != nil {
		return err
	}
	l.ConfigureScope(fn)
	return nil
}

// WithScope runs fn inside a forked current scope of ctx's Local.
func WithScope(ctx context.Context, fn func(s *Scope)) error {
	l, err := LocalFromContext(ctx)
	if err != nil {
		return err
	}
	l.WithScope(fn)
	return nil
}

// WithIsolationScope runs fn inside a fresh isolation scope of ctx's Local.
func WithIsolationScope(ctx context.Context, fn func(s *Scope)) error {
	l, err := LocalFromContext(ctx)
	if err != nil {
		return err
	}
	l.WithIsolationScope(fn)
	return nil
}

// AddBreadcrumb adds b to the isolation scope of ctx's Local.
func AddBreadcrumb(ctx context.Context, b event.Breadcrumb) error {
	l, err := LocalFromContext(ctx)
	if err != nil {
		return err
	}
	l.AddBreadcrumb(b)
	return nil
}

// SetTag sets a tag on the isolation scope of ctx's Local.
func SetTag(ctx context.Context, key, value string) error {
	l, err := LocalFromContext(ctx)
	if err != nil {
		return err
	}
	l.SetTag(key, value)
	return nil
}

// SetUser sets the user on the isolation scope of ctx's Local.
func SetUser(ctx context.Context, user *event.User) error {
	l, err := LocalFromContext(ctx)
	if err != nil {
		return err
	}
	l.SetUser(user)
	return nil
}

// SetLevel sets the level on the isolation scope of ctx's Local.
func SetLevel(ctx context.Context, level event.Level) error {
	l, err := LocalFromContext(ctx)
	if err != nil {
		return err
	}
	l.SetLevel(level)
	return nil
}

// CaptureEvent captures e through ctx's Local.
func CaptureEvent(ctx context.Context, e *event.Event) (event.ID, error) {
	l, err := LocalFromContext(ctx)
	if err != nil {
		return "", err
	}
	return l.CaptureEvent(e)
}

// CaptureMessage captures a message through ctx's Local.
func CaptureMessage(ctx context.Context, msg string, level event.Level) (event.ID, error) {
	l, err := LocalFromContext(ctx)
	if err != nil {
		return "", err
	}
	return l.CaptureMessage(msg, level)
}

// CaptureError captures err through ctx's Local.
func CaptureError(ctx context.Context, err error) (event.ID, error) {
	l, lerr := LocalFromContext(ctx)
	if lerr != nil {
		return "", lerr
	}
	return l.CaptureError(err)
}

// TraceHeader returns the outgoing trace header for ctx.
func TraceHeader(ctx context.Context) (string, error) {
	l, err := LocalFromContext(ctx)
	if err != nil {
		return "", err
	}
	return l.TraceHeader(), nil
}
