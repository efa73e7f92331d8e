package propagation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength is returned when a hex identifier does not have the exact
	// width of its type (32 characters for a trace id, 16 for a span id).
	ErrInvalidLength = errors.New("invalid identifier length")

	// ErrInvalidCharacter is returned when a hex identifier contains a
	// character outside [0-9a-fA-F].
	ErrInvalidCharacter = errors.New("invalid identifier character")

	// ErrMalformedHeader is returned when a trace header does not have the
	// "{trace}-{span}[-{0|1}]" shape.
	ErrMalformedHeader = errors.New("malformed trace header")
)

// HexError describes a failed hex identifier decode.
type HexError struct {
	// Kind names the identifier being decoded ("trace id" or "span id").
	Kind string
	// Input is the rejected text.
	Input string
	// Err is ErrInvalidLength or ErrInvalidCharacter.
	Err error
}

func (e *HexError) Error() string {
	return fmt.Sprintf("decode %s %q: %v", e.Kind, e.Input, e.Err)
}

func (e *HexError) Unwrap() error {
	return e.Err
}
