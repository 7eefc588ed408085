package document

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/viant/bindly/conv"
	"github.com/viant/bindly/visitor"
)

var (
	_ visitor.Visitor       = (*Reader)(nil)
	_ visitor.NumberSkipper = (*Reader)(nil)
	_ visitor.Visitor       = (*Builder)(nil)
)

// Reader consumes a document tree. Besides builder nodes it accepts Object values,
// map[string]interface{} (visited in key order) and []interface{}.
type Reader struct {
	value     interface{}
	pending   bool
	policy    visitor.MismatchPolicy
	converter *conv.Converter
}

// NewReader creates a reader for supplied node
func NewReader(node interface{}, opts ...Option) *Reader {
	options := resolveOptions(opts)
	return &Reader{value: node, pending: true, policy: options.MismatchPolicy, converter: conv.NewConverter(options.MismatchPolicy)}
}

// Done returns true if the root node was consumed
func (r *Reader) Done() bool {
	return !r.pending
}

func kindOf(value interface{}) visitor.Kind {
	switch value.(type) {
	case Object, *Object, map[string]interface{}:
		return visitor.KindObject
	case Array, []interface{}:
		return visitor.KindArray
	}
	return conv.Kind(value)
}

func (r *Reader) Peek() visitor.Kind {
	if !r.pending {
		return visitor.KindNone
	}
	return kindOf(r.value)
}

// next takes the current node
func (r *Reader) next() (interface{}, error) {
	if !r.pending {
		return nil, fmt.Errorf("%w: no value to read", visitor.ErrStructuralMismatch)
	}
	r.pending = false
	return r.value, nil
}

func (r *Reader) unsupported() error {
	return fmt.Errorf("%w: unsupported document node %T", visitor.ErrUnsupportedType, r.value)
}

func (r *Reader) Consume(kind visitor.Kind, each func(key string) error) (bool, error) {
	actual := r.Peek()
	switch actual {
	case kind:
	case visitor.KindNone:
		return true, fmt.Errorf("%w: no value to read", visitor.ErrStructuralMismatch)
	case visitor.KindError:
		return true, r.unsupported()
	case visitor.KindNull:
		r.pending = false
		return true, nil
	default:
		if r.policy == visitor.CoerceMismatch {
			return true, visitor.Discard(r)
		}
		return true, fmt.Errorf("%w: expected %v but had %v", visitor.ErrStructuralMismatch, kind, actual)
	}
	node, _ := r.next()
	switch actual := node.(type) {
	case Object:
		return true, r.consumeFields(actual.Fields, each)
	case *Object:
		return true, r.consumeFields(actual.Fields, each)
	case map[string]interface{}:
		keys := make([]string, 0, len(actual))
		for key := range actual {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := r.child(key, actual[key], each); err != nil {
				return true, err
			}
		}
		return true, nil
	case Array:
		return true, r.consumeItems(actual, each)
	case []interface{}:
		return true, r.consumeItems(actual, each)
	}
	return true, r.unsupported()
}

func (r *Reader) consumeFields(fields []KeyValue, each func(key string) error) error {
	for _, field := range fields {
		if err := r.child(field.Key, field.Value, each); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) consumeItems(items []interface{}, each func(key string) error) error {
	for i, item := range items {
		if err := r.child(strconv.Itoa(i), item, each); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) child(key string, value interface{}, each func(key string) error) error {
	r.value, r.pending = value, true
	if err := each(key); err != nil {
		return err
	}
	if r.pending {
		return fmt.Errorf("%w: value of %q was not consumed", visitor.ErrStructuralMismatch, key)
	}
	return nil
}

// scalar takes the current scalar node, skip is true for null and skipped composites
func (r *Reader) scalar() (value interface{}, skip bool, err error) {
	switch kind := r.Peek(); kind {
	case visitor.KindNone:
		_, err = r.next()
		return nil, true, err
	case visitor.KindNull:
		r.pending = false
		return nil, true, nil
	case visitor.KindError:
		return nil, true, r.unsupported()
	case visitor.KindObject, visitor.KindArray:
		if r.policy == visitor.CoerceMismatch {
			return nil, true, visitor.Discard(r)
		}
		return nil, true, fmt.Errorf("%w: unexpected %v", visitor.ErrStructuralMismatch, kind)
	}
	value, err = r.next()
	return value, false, err
}

func (r *Reader) Null() error {
	switch kind := r.Peek(); kind {
	case visitor.KindNull:
		r.pending = false
		return nil
	case visitor.KindNone:
		_, err := r.next()
		return err
	default:
		if r.policy == visitor.CoerceMismatch {
			return visitor.Discard(r)
		}
		return fmt.Errorf("%w: expected null but had %v", visitor.ErrStructuralMismatch, kind)
	}
}

func (r *Reader) Bool(value *bool) error {
	src, skip, err := r.scalar()
	if skip || err != nil {
		return err
	}
	result, err := r.converter.Bool(src)
	if err == nil {
		*value = result
	}
	return err
}

func (r *Reader) Int(value *int64) error {
	src, skip, err := r.scalar()
	if skip || err != nil {
		return err
	}
	result, err := r.converter.Int64(src)
	if err == nil {
		*value = result
	}
	return err
}

func (r *Reader) Uint(value *uint64) error {
	src, skip, err := r.scalar()
	if skip || err != nil {
		return err
	}
	result, err := r.converter.Uint64(src)
	if err == nil {
		*value = result
	}
	return err
}

func (r *Reader) Float(value *float64) error {
	src, skip, err := r.scalar()
	if skip || err != nil {
		return err
	}
	result, err := r.converter.Float64(src)
	if err == nil {
		*value = result
	}
	return err
}

func (r *Reader) String(value *string) error {
	src, skip, err := r.scalar()
	if skip || err != nil {
		return err
	}
	result, err := r.converter.String(src)
	if err == nil {
		*value = result
	}
	return err
}

// Buffer copies text into value, zero padding the rest
func (r *Reader) Buffer(value []byte) error {
	var text string
	if err := r.String(&text); err != nil {
		return err
	}
	if len(text) > len(value) && r.policy != visitor.CoerceMismatch {
		return fmt.Errorf("%w: %d bytes text exceeds %d bytes buffer", visitor.ErrStructuralMismatch, len(text), len(value))
	}
	n := copy(value, text)
	clear(value[n:])
	return nil
}

// ProduceStart fails, a reader cannot write
func (r *Reader) ProduceStart(kind visitor.Kind) error {
	return fmt.Errorf("%w: reader cannot produce %v", visitor.ErrStructuralMismatch, kind)
}

// ProduceEnd fails, a reader cannot write
func (r *Reader) ProduceEnd(kind visitor.Kind) error {
	return fmt.Errorf("%w: reader cannot produce %v", visitor.ErrStructuralMismatch, kind)
}

// SkipNumber drops the current number node
func (r *Reader) SkipNumber() error {
	if kind := r.Peek(); kind != visitor.KindNumber {
		return fmt.Errorf("%w: expected number but had %v", visitor.ErrStructuralMismatch, kind)
	}
	_, err := r.next()
	return err
}
