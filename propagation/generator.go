package propagation

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"
)

// seq separates sources created within the same clock tick.
var seq atomic.Uint64

// NewSeededSource returns a PCG source seeded from the current time mixed
// with a process-wide sequence number. It is not cryptographically secure.
func NewSeededSource() rand.Source {
	now := uint64(time.Now().UnixNano())
	n := seq.Add(1)
	return rand.NewPCG(now^(n*0x9e3779b97f4a7c15), n)
}

// Generator produces trace and span identifiers.
//
// A Generator built with a nil source draws from a freshly seeded source on
// every call and is safe for concurrent use. A Generator built with an
// explicit source serializes access to it.
type Generator struct {
	mu  sync.Mutex
	src rand.Source
}

var defaultGenerator = &Generator{}

// NewGenerator returns a Generator that reads from src. A nil src selects
// the time-seeded default.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{src: src}
}

// DefaultGenerator returns the process-wide time-seeded generator.
func DefaultGenerator() *Generator {
	return defaultGenerator
}

// TraceID returns a new non-nil trace id.
func (g *Generator) TraceID() TraceID {
	var id TraceID
	for id.IsNil() {
		g.fill(id[:])
	}
	return id
}

// SpanID returns a new non-nil span id.
func (g *Generator) SpanID() SpanID {
	var id SpanID
	for id.IsNil() {
		g.fill(id[:])
	}
	return id
}

// PropagationContext returns a fresh context with new trace and span ids and
// no parent.
func (g *Generator) PropagationContext() PropagationContext {
	return PropagationContext{
		TraceID: g.TraceID(),
		SpanID:  g.SpanID(),
	}
}

func (g *Generator) fill(dst []byte) {
	if g == nil || g.src == nil {
		fillFrom(NewSeededSource(), dst)
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	fillFrom(g.src, dst)
}

func fillFrom(src rand.Source, dst []byte) {
	for i := 0; i < len(dst); i += 8 {
		v := src.Uint64()
		for j := i; j < len(dst) && j < i+8; j++ {
			dst[j] = byte(v)
			v >>= 8
		}
	}
}

// NewTraceID returns a trace id from the default generator.
func NewTraceID() TraceID {
	return defaultGenerator.TraceID()
}

// NewSpanID returns a span id from the default generator.
func NewSpanID() SpanID {
	return defaultGenerator.SpanID()
}
