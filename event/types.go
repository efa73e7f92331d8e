package event

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/aalemi-dev/scopekit/propagation"
	"github.com/google/uuid"
)

// Level is the severity of an event or breadcrumb. The empty Level means
// "unset".
type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelFatal   Level = "fatal"
)

// DefaultLevel is the level a fresh scope carries. A scope at this level
// never writes it onto an event.
const DefaultLevel = LevelInfo

// Event types.
const (
	TypeDefault     = ""
	TypeTransaction = "transaction"
)

// ID is a 32-character lowercase hex event identifier.
type ID string

// NewID returns a random event identifier.
func NewID() ID {
	return ID(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// Context is one named group of key/value data, e.g. the "os" context.
type Context map[string]interface{}

// Clone returns a deep copy of c.
func (c Context) Clone() Context {
	if c == nil {
		return nil
	}
	return Context(cloneMap(c))
}

// User identifies the user affected by an event.
type User struct {
	ID        string            `json:"id,omitempty"`
	Email     string            `json:"email,omitempty"`
	Username  string            `json:"username,omitempty"`
	IPAddress string            `json:"ip_address,omitempty"`
	Name      string            `json:"name,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
}

// Clone returns a deep copy of u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Data = cloneStrings(u.Data)
	return &c
}

// Breadcrumb records something that happened before an event.
type Breadcrumb struct {
	Message   string                 `json:"message,omitempty"`
	Type      string                 `json:"type,omitempty"`
	Level     Level                  `json:"level,omitempty"`
	Category  string                 `json:"category,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Clone returns a deep copy of b.
func (b Breadcrumb) Clone() Breadcrumb {
	c := b
	c.Data = cloneMap(b.Data)
	return c
}

// Exception describes an error attached to an event. Stacktrace is opaque
// here; it is produced and consumed by collaborators.
type Exception struct {
	Type       string      `json:"type,omitempty"`
	Value      string      `json:"value,omitempty"`
	Stacktrace interface{} `json:"stacktrace,omitempty"`
}

// SpanRecord is a finished child span as carried in a transaction event.
type SpanRecord struct {
	TraceID        propagation.TraceID    `json:"trace_id"`
	SpanID         propagation.SpanID     `json:"span_id"`
	ParentSpanID   *propagation.SpanID    `json:"parent_span_id,omitempty"`
	Op             string                 `json:"op,omitempty"`
	Description    string                 `json:"description,omitempty"`
	Status         string                 `json:"status,omitempty"`
	Origin         string                 `json:"origin,omitempty"`
	StartTimestamp time.Time              `json:"start_timestamp"`
	Timestamp      time.Time              `json:"timestamp"`
	Tags           map[string]string      `json:"tags,omitempty"`
	Data           map[string]interface{} `json:"data,omitempty"`
}

// Clone returns a deep copy of r.
func (r SpanRecord) Clone() SpanRecord {
	c := r
	if r.ParentSpanID != nil {
		c.ParentSpanID = propagation.SpanIDPtr(*r.ParentSpanID)
	}
	c.Tags = cloneStrings(r.Tags)
	c.Data = cloneMap(r.Data)
	return c
}

// TransactionInfo carries transaction metadata.
type TransactionInfo struct {
	Source string `json:"source,omitempty"`
}

// Event is a diagnostic event ready for a client.
type Event struct {
	EventID     ID        `json:"event_id"`
	Type        string    `json:"type,omitempty"`
	Level       Level     `json:"level,omitempty"`
	Message     string    `json:"message,omitempty"`
	Platform    string    `json:"platform,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment,omitempty"`
	Release     string    `json:"release,omitempty"`
	ServerName  string    `json:"server_name,omitempty"`

	Transaction     string           `json:"transaction,omitempty"`
	TransactionInfo *TransactionInfo `json:"transaction_info,omitempty"`
	StartTimestamp  time.Time        `json:"start_timestamp,omitempty"`

	Tags        map[string]string  `json:"tags,omitempty"`
	User        *User              `json:"user,omitempty"`
	Fingerprint []string           `json:"fingerprint,omitempty"`
	Breadcrumbs []Breadcrumb       `json:"breadcrumbs,omitempty"`
	Contexts    map[string]Context `json:"contexts,omitempty"`
	Exception   []Exception        `json:"exception,omitempty"`

	TraceID      *propagation.TraceID `json:"trace_id,omitempty"`
	SpanID       *propagation.SpanID  `json:"span_id,omitempty"`
	ParentSpanID *propagation.SpanID  `json:"parent_span_id,omitempty"`

	Spans []SpanRecord `json:"spans,omitempty"`
}

// New returns an empty event with a fresh id.
func New() *Event {
	return &Event{
		EventID: NewID(),
	}
}

// NewMessage returns an event carrying msg at level.
func NewMessage(msg string, level Level) *Event {
	e := New()
	e.Message = msg
	e.Level = level
	return e
}

// FromError returns an error-level event describing err and every error it
// wraps, outermost first.
func FromError(err error) *Event {
	e := New()
	e.Level = LevelError
	for err != nil {
		e.Exception = append(e.Exception, Exception{
			Type:  reflect.TypeOf(err).String(),
			Value: err.Error(),
		})
		err = errors.Unwrap(err)
	}
	if len(e.Exception) > 0 {
		e.Message = e.Exception[0].Value
	}
	return e
}

// IsTransaction reports whether e describes a finished transaction.
func (e *Event) IsTransaction() bool {
	return e.Type == TypeTransaction
}
