package document

import (
	"fmt"

	"github.com/viant/bindly/visitor"
)

type pending struct {
	object *Object
	array  *Array
	key    string
	hasKey bool
}

// Builder produces a document tree: *Object, Array, nil, bool, int64, uint64, float64 or string nodes
type Builder struct {
	root    interface{}
	hasRoot bool
	stack   []*pending
}

// NewBuilder creates a builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Node returns produced root node
func (b *Builder) Node() (interface{}, error) {
	if !b.hasRoot || len(b.stack) > 0 {
		return nil, fmt.Errorf("%w: incomplete document", visitor.ErrStructuralMismatch)
	}
	return b.root, nil
}

func (b *Builder) add(value interface{}) error {
	if len(b.stack) == 0 {
		if b.hasRoot {
			return fmt.Errorf("%w: multiple root values", visitor.ErrStructuralMismatch)
		}
		b.root, b.hasRoot = value, true
		return nil
	}
	top := b.stack[len(b.stack)-1]
	if top.array != nil {
		*top.array = append(*top.array, value)
		return nil
	}
	if !top.hasKey {
		return fmt.Errorf("%w: expected object key", visitor.ErrStructuralMismatch)
	}
	top.object.Fields = append(top.object.Fields, KeyValue{Key: top.key, Value: value})
	top.key, top.hasKey = "", false
	return nil
}

func (b *Builder) Peek() visitor.Kind {
	return visitor.KindNone
}

func (b *Builder) Consume(visitor.Kind, func(key string) error) (bool, error) {
	return false, nil
}

func (b *Builder) ProduceStart(kind visitor.Kind) error {
	switch kind {
	case visitor.KindObject:
		b.stack = append(b.stack, &pending{object: &Object{}})
	case visitor.KindArray:
		b.stack = append(b.stack, &pending{array: &Array{}})
	default:
		return fmt.Errorf("%w: cannot open %v", visitor.ErrStructuralMismatch, kind)
	}
	return nil
}

func (b *Builder) ProduceEnd(kind visitor.Kind) error {
	if len(b.stack) == 0 {
		return fmt.Errorf("%w: unbalanced %v end", visitor.ErrStructuralMismatch, kind)
	}
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	switch {
	case kind == visitor.KindObject && top.object != nil:
		if top.hasKey {
			return fmt.Errorf("%w: missing value of %v", visitor.ErrStructuralMismatch, top.key)
		}
		return b.add(top.object)
	case kind == visitor.KindArray && top.array != nil:
		return b.add(*top.array)
	}
	return fmt.Errorf("%w: unbalanced %v end", visitor.ErrStructuralMismatch, kind)
}

func (b *Builder) Null() error {
	return b.add(nil)
}

func (b *Builder) Bool(value *bool) error {
	return b.add(*value)
}

func (b *Builder) Int(value *int64) error {
	return b.add(*value)
}

func (b *Builder) Uint(value *uint64) error {
	return b.add(*value)
}

func (b *Builder) Float(value *float64) error {
	return b.add(*value)
}

func (b *Builder) String(value *string) error {
	if len(b.stack) > 0 {
		if top := b.stack[len(b.stack)-1]; top.object != nil && !top.hasKey {
			top.key, top.hasKey = *value, true
			return nil
		}
	}
	return b.add(*value)
}

// Buffer adds text up to the first zero byte
func (b *Builder) Buffer(value []byte) error {
	size := len(value)
	for i, c := range value {
		if c == 0 {
			size = i
			break
		}
	}
	return b.add(string(value[:size]))
}
