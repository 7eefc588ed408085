package document

import (
	"fmt"

	"github.com/viant/bindly/visitor"
)

// From produces document tree for supplied value
func From(value interface{}) (interface{}, error) {
	builder := NewBuilder()
	if err := visitor.Visit(builder, value); err != nil {
		return nil, err
	}
	return builder.Node()
}

// Into consumes document node into dest, dest has to be a non nil pointer
func Into(node interface{}, dest interface{}, opts ...Option) error {
	reader := NewReader(node, opts...)
	if err := visitor.Visit(reader, dest); err != nil {
		return err
	}
	if !reader.Done() {
		return fmt.Errorf("%w: document was not consumed", visitor.ErrStructuralMismatch)
	}
	return nil
}
