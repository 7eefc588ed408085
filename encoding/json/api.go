package json

import (
	"fmt"

	"github.com/viant/bindly/visitor"
)

// Marshal produces compact JSON for supplied value
func Marshal(value interface{}, opts ...Option) ([]byte, error) {
	w := acquireWriter(resolveOptions(opts))
	defer releaseWriter(w)
	if err := visitor.Visit(w, value); err != nil {
		return nil, err
	}
	if !w.Complete() {
		return nil, fmt.Errorf("%w: incomplete output", visitor.ErrStructuralMismatch)
	}
	return append([]byte(nil), w.Bytes()...), nil
}

// Unmarshal consumes JSON data into dest, dest has to be a non nil pointer
func Unmarshal(data []byte, dest interface{}, opts ...Option) error {
	r := NewReader(data, opts...)
	if r.Peek() == visitor.KindNone {
		return r.syntaxError("unexpected end of input")
	}
	if err := visitor.Visit(r, dest); err != nil {
		return err
	}
	if r.Peek() != visitor.KindNone {
		return r.syntaxError("unexpected trailing data")
	}
	return nil
}

// Valid reports whether data is exactly one well formed JSON value
func Valid(data []byte) bool {
	r := NewReader(data)
	if r.Peek() == visitor.KindNone {
		return false
	}
	if err := visitor.Discard(r); err != nil {
		return false
	}
	return r.Peek() == visitor.KindNone
}
