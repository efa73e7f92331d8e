package tracing

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/aalemi-dev/scopekit/client"
	"github.com/aalemi-dev/scopekit/propagation"
)

// Sampler decides whether a span is sampled.
//
// A Sampler built with a nil source draws each value from a freshly seeded
// source, so draws are independent per call. A Sampler built with an
// explicit source serializes access to it, which makes decisions
// reproducible in tests.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler returns a Sampler reading from src. A nil src selects the
// time-seeded default.
func NewSampler(src rand.Source) *Sampler {
	s := &Sampler{}
	if src != nil {
		s.rng = rand.New(src)
	}
	return s
}

// Sample returns the verdict for span, evaluated in this order:
//  1. no sample rate configured: false;
//  2. a child span: its parent's verdict;
//  3. a TracesSampler is configured: its rate decides, and a rate that is
//     NaN, outside [0, 1] or exactly 0 means false;
//  4. the inbound trace context carries a decision: that decision;
//  5. the static sample rate decides.
//
// A rate decides by comparing one uniform draw in [0, 1) against it.
func (s *Sampler) Sample(span *Span, opts client.Options, tc *propagation.TraceContext) propagation.Sampled {
	if !opts.TracingEnabled() {
		return propagation.SampledFalse
	}

	if span != nil && !span.IsTransaction() {
		if parent := span.Parent(); parent != nil {
			return parent.Sampled()
		}
	}

	if opts.TracesSampler != nil {
		sc := client.SamplingContext{TraceContext: tc}
		if span != nil {
			sc.Span = span
			sc.Name = span.Name()
			if parent := span.Parent(); parent != nil {
				sc.Parent = parent
			}
		}
		rate := opts.TracesSampler(sc)
		if math.IsNaN(rate) || rate <= 0 || rate > 1 {
			return propagation.SampledFalse
		}
		return propagation.SampledFromBool(s.draw() < rate)
	}

	if tc != nil && tc.Sampled.IsDefined() {
		return tc.Sampled
	}

	rate := *opts.SampleRate
	switch {
	case math.IsNaN(rate) || rate <= 0:
		return propagation.SampledFalse
	case rate >= 1:
		return propagation.SampledTrue
	default:
		return propagation.SampledFromBool(s.draw() < rate)
	}
}

func (s *Sampler) draw() float64 {
	if s == nil || s.rng == nil {
		return rand.New(propagation.NewSeededSource()).Float64()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

var _ client.SpanView = (*Span)(nil)
