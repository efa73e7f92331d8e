package tracing

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/aalemi-dev/scopekit/client"
	"github.com/aalemi-dev/scopekit/propagation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedSampler() *Sampler {
	return NewSampler(rand.NewPCG(1, 2))
}

func TestSample_TracingDisabled(t *testing.T) {
	t.Parallel()
	s := fixedSampler()
	tx := NewTransaction("tx", "op", nil, nil)

	called := false
	opts := client.Options{TracesSampler: func(client.SamplingContext) float64 {
		called = true
		return 1
	}}
	assert.Equal(t, propagation.SampledFalse, s.Sample(tx, opts, nil))
	assert.False(t, called)
}

func TestSample_StaticRate(t *testing.T) {
	t.Parallel()
	s := fixedSampler()
	tx := NewTransaction("tx", "op", nil, nil)

	assert.Equal(t, propagation.SampledFalse, s.Sample(tx, client.Options{SampleRate: client.Float64(0)}, nil))
	assert.Equal(t, propagation.SampledFalse, s.Sample(tx, client.Options{SampleRate: client.Float64(-1)}, nil))
	assert.Equal(t, propagation.SampledFalse, s.Sample(tx, client.Options{SampleRate: client.Float64(math.NaN())}, nil))
	assert.Equal(t, propagation.SampledTrue, s.Sample(tx, client.Options{SampleRate: client.Float64(1)}, nil))
	assert.Equal(t, propagation.SampledTrue, s.Sample(tx, client.Options{SampleRate: client.Float64(2)}, nil))
}

func TestSample_StaticRateFraction(t *testing.T) {
	t.Parallel()
	s := fixedSampler()
	opts := client.Options{SampleRate: client.Float64(0.5)}

	sampled := 0
	for i := 0; i < 1000; i++ {
		if s.Sample(NewTransaction("tx", "op", nil, nil), opts, nil) == propagation.SampledTrue {
			sampled++
		}
	}
	assert.Greater(t, sampled, 350)
	assert.Less(t, sampled, 650)
}

func TestSample_ChildUsesParent(t *testing.T) {
	t.Parallel()
	s := fixedSampler()
	for _, v := range []propagation.Sampled{propagation.SampledTrue, propagation.SampledFalse} {
		tx := NewTransaction("tx", "op", nil, nil)
		tx.setSampled(v)
		child := tx.StartChild("c")

		samplerCalled := false
		opts := client.Options{
			SampleRate: client.Float64(1 - float64(v+1)/2),
			TracesSampler: func(client.SamplingContext) float64 {
				samplerCalled = true
				return 1
			},
		}
		assert.Equal(t, v, s.Sample(child, opts, nil))
		assert.False(t, samplerCalled)
	}
}

func TestSample_TracesSamplerContext(t *testing.T) {
	t.Parallel()
	s := fixedSampler()
	tx := NewTransaction("checkout", "http.server", nil, nil)
	tc := propagation.TraceContext{Name: "checkout", Sampled: propagation.SampledFalse}

	var got client.SamplingContext
	opts := client.Options{
		SampleRate: client.Float64(0),
		TracesSampler: func(sc client.SamplingContext) float64 {
			got = sc
			return 1
		},
	}

	assert.Equal(t, propagation.SampledTrue, s.Sample(tx, opts, &tc), "sampler takes priority over the inbound decision")
	require.NotNil(t, got.Span)
	assert.Equal(t, "http.server", got.Span.Op())
	assert.True(t, got.Span.IsTransaction())
	assert.Nil(t, got.Parent)
	assert.Equal(t, "checkout", got.Name)
	assert.Same(t, &tc, got.TraceContext)
}

func TestSample_TracesSamplerMisbehaves(t *testing.T) {
	t.Parallel()
	s := fixedSampler()
	tx := NewTransaction("tx", "op", nil, nil)

	for _, rate := range []float64{0, -0.1, 1.1, math.NaN(), math.Inf(1)} {
		opts := client.Options{
			SampleRate:    client.Float64(1),
			TracesSampler: func(client.SamplingContext) float64 { return rate },
		}
		for i := 0; i < 50; i++ {
			assert.Equal(t, propagation.SampledFalse, s.Sample(tx, opts, nil), "rate %v", rate)
		}
	}
}

func TestSample_TracesSamplerFraction(t *testing.T) {
	t.Parallel()
	s := fixedSampler()
	opts := client.Options{
		SampleRate:    client.Float64(1),
		TracesSampler: func(client.SamplingContext) float64 { return 0.8 },
	}

	sampled := 0
	for i := 0; i < 1000; i++ {
		if s.Sample(NewTransaction("tx", "op", nil, nil), opts, nil) == propagation.SampledTrue {
			sampled++
		}
	}
	fraction := float64(sampled) / 1000
	assert.Greater(t, fraction, 0.5)
	assert.Less(t, fraction, 1.0)
}

func TestSample_InboundDecision(t *testing.T) {
	t.Parallel()
	s := fixedSampler()
	tx := NewTransaction("tx", "op", nil, nil)

	yes := propagation.TraceContext{Sampled: propagation.SampledTrue}
	no := propagation.TraceContext{Sampled: propagation.SampledFalse}
	undecided := propagation.TraceContext{}

	assert.Equal(t, propagation.SampledTrue, s.Sample(tx, client.Options{SampleRate: client.Float64(0.0001)}, &yes))
	assert.Equal(t, propagation.SampledFalse, s.Sample(tx, client.Options{SampleRate: client.Float64(1)}, &no))
	assert.Equal(t, propagation.SampledTrue, s.Sample(tx, client.Options{SampleRate: client.Float64(1)}, &undecided))
}

func TestSample_Reproducible(t *testing.T) {
	t.Parallel()
	opts := client.Options{SampleRate: client.Float64(0.5)}
	a, b := NewSampler(rand.NewPCG(7, 7)), NewSampler(rand.NewPCG(7, 7))

	for i := 0; i < 100; i++ {
		tx := NewTransaction("tx", "op", nil, nil)
		assert.Equal(t, a.Sample(tx, opts, nil), b.Sample(tx, opts, nil))
	}
}

func TestSample_DefaultSourceDraws(t *testing.T) {
	t.Parallel()
	s := NewSampler(nil)
	opts := client.Options{SampleRate: client.Float64(0.5)}

	seen := map[propagation.Sampled]bool{}
	for i := 0; i < 200; i++ {
		seen[s.Sample(NewTransaction("tx", "op", nil, nil), opts, nil)] = true
	}
	assert.True(t, seen[propagation.SampledTrue])
	assert.True(t, seen[propagation.SampledFalse])
}
