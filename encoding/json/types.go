package json

import (
	"fmt"

	"github.com/viant/bindly/visitor"
)

// MismatchPolicy controls input whose kind disagrees with the destination shape.
type MismatchPolicy = visitor.MismatchPolicy

const (
	// RejectMismatch fails with visitor.ErrStructuralMismatch
	RejectMismatch = visitor.RejectMismatch
	// CoerceMismatch converts quoted numbers and bools, truncates fractional numbers into integers,
	// and skips composites that cannot be converted
	CoerceMismatch = visitor.CoerceMismatch
)

// SyntaxError reports malformed JSON input
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid JSON at %d: %s", e.Offset, e.Msg)
}
