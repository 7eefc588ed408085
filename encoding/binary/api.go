package binary

import (
	"fmt"

	"github.com/viant/bindly/visitor"
)

// Marshal produces tagged binary encoding of supplied value
func Marshal(value interface{}) ([]byte, error) {
	w := NewWriter()
	if err := visitor.Visit(w, value); err != nil {
		return nil, err
	}
	if !w.Complete() {
		return nil, fmt.Errorf("%w: incomplete output", visitor.ErrStructuralMismatch)
	}
	return w.Bytes(), nil
}

// Unmarshal consumes tagged binary data into dest, dest has to be a non nil pointer
func Unmarshal(data []byte, dest interface{}, opts ...Option) error {
	r := NewReader(data, opts...)
	if r.Peek() == visitor.KindNone {
		return r.malformed("unexpected end of input")
	}
	if err := visitor.Visit(r, dest); err != nil {
		return err
	}
	if r.Peek() != visitor.KindNone {
		return r.malformed("unexpected trailing data")
	}
	return nil
}
