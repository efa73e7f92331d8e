package propagation

import (
	"encoding/hex"

	"go.opentelemetry.io/otel/trace"
)

const (
	traceIDSize = 16
	spanIDSize  = 8
)

// TraceID identifies one distributed trace. The zero value is the nil id.
type TraceID [traceIDSize]byte

// SpanID identifies one span within a trace. The zero value is the nil id.
type SpanID [spanIDSize]byte

// NilTraceID and NilSpanID are the all-zero identifiers.
var (
	NilTraceID TraceID
	NilSpanID  SpanID
)

// String renders the id as 32 lowercase hex characters.
func (t TraceID) String() string {
	return hex.EncodeToString(t[:])
}

// IsNil reports whether every byte is zero.
func (t TraceID) IsNil() bool {
	return t == NilTraceID
}

// OTel converts the id to its OpenTelemetry representation.
func (t TraceID) OTel() trace.TraceID {
	return trace.TraceID(t)
}

// MarshalText implements encoding.TextMarshaler.
func (t TraceID) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TraceID) UnmarshalText(text []byte) error {
	id, err := TraceIDFromHex(string(text))
	if err != nil {
		return err
	}
	*t = id
	return nil
}

// String renders the id as 16 lowercase hex characters.
func (s SpanID) String() string {
	return hex.EncodeToString(s[:])
}

// IsNil reports whether every byte is zero.
func (s SpanID) IsNil() bool {
	return s == NilSpanID
}

// OTel converts the id to its OpenTelemetry representation.
func (s SpanID) OTel() trace.SpanID {
	return trace.SpanID(s)
}

// MarshalText implements encoding.TextMarshaler.
func (s SpanID) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SpanID) UnmarshalText(text []byte) error {
	id, err := SpanIDFromHex(string(text))
	if err != nil {
		return err
	}
	*s = id
	return nil
}

// TraceIDFromHex decodes exactly 32 hex characters. Any other length fails
// with ErrInvalidLength and any non-hex character with ErrInvalidCharacter.
func TraceIDFromHex(s string) (TraceID, error) {
	var id TraceID
	if err := decodeHex("trace id", s, id[:]); err != nil {
		return NilTraceID, err
	}
	return id, nil
}

// SpanIDFromHex decodes exactly 16 hex characters.
func SpanIDFromHex(s string) (SpanID, error) {
	var id SpanID
	if err := decodeHex("span id", s, id[:]); err != nil {
		return NilSpanID, err
	}
	return id, nil
}

// SpanIDPtr returns a pointer to a copy of id.
func SpanIDPtr(id SpanID) *SpanID {
	return &id
}

func decodeHex(kind, s string, dst []byte) error {
	if len(s) != len(dst)*2 {
		return &HexError{Kind: kind, Input: s, Err: ErrInvalidLength}
	}
	for i := 0; i < len(s); i++ {
		if !isHex(s[i]) {
			return &HexError{Kind: kind, Input: s, Err: ErrInvalidCharacter}
		}
	}
	if _, err := hex.Decode(dst, []byte(s)); err != nil {
		return &HexError{Kind: kind, Input: s, Err: ErrInvalidCharacter}
	}
	return nil
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
