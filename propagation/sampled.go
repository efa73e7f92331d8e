package propagation

// Sampled is a tri-state sampling verdict.
type Sampled int8

const (
	// SampledFalse means the trace is not transmitted.
	SampledFalse Sampled = -1
	// SampledUndefined means no decision has been made yet. It is never
	// serialized as a boolean.
	SampledUndefined Sampled = 0
	// SampledTrue means the trace is transmitted.
	SampledTrue Sampled = 1
)

// SampledFromBool maps a boolean onto a defined verdict.
func SampledFromBool(b bool) Sampled {
	if b {
		return SampledTrue
	}
	return SampledFalse
}

// Bool returns the verdict and whether it is defined.
func (s Sampled) Bool() (value bool, ok bool) {
	switch s {
	case SampledTrue:
		return true, true
	case SampledFalse:
		return false, true
	default:
		return false, false
	}
}

// IsDefined reports whether a decision has been made.
func (s Sampled) IsDefined() bool {
	return s == SampledTrue || s == SampledFalse
}

func (s Sampled) String() string {
	switch s {
	case SampledTrue:
		return "true"
	case SampledFalse:
		return "false"
	default:
		return "undefined"
	}
}

// MarshalJSON writes true, false, or null for an undefined verdict.
func (s Sampled) MarshalJSON() ([]byte, error) {
	switch s {
	case SampledTrue:
		return []byte("true"), nil
	case SampledFalse:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}
