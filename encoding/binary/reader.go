package binary

import (
	stdbinary "encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/viant/bindly/conv"
	"github.com/viant/bindly/visitor"
)

var (
	_ visitor.Visitor = (*Reader)(nil)
	_ visitor.Visitor = (*Writer)(nil)
)

// Reader consumes tagged binary input
type Reader struct {
	data      []byte
	pos       int
	options   Options
	converter *conv.Converter
}

// NewReader creates a reader over supplied data
func NewReader(data []byte, opts ...Option) *Reader {
	options := resolveOptions(opts)
	return &Reader{data: data, options: options, converter: conv.NewConverter(options.MismatchPolicy)}
}

// Offset returns current read position
func (r *Reader) Offset() int {
	return r.pos
}

func (r *Reader) malformed(msg string) error {
	return fmt.Errorf("%w: %s at %d", ErrMalformed, msg, r.pos)
}

func (r *Reader) coerce() bool {
	return r.options.MismatchPolicy == visitor.CoerceMismatch
}

func (r *Reader) Peek() visitor.Kind {
	if r.pos >= len(r.data) {
		return visitor.KindNone
	}
	return Tag(r.data[r.pos]).Kind()
}

func (r *Reader) uvarint() (uint64, error) {
	value, n := stdbinary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		return 0, r.malformed("invalid varint")
	}
	r.pos += n
	return value, nil
}

func (r *Reader) text() (string, error) {
	size, err := r.uvarint()
	if err != nil {
		return "", err
	}
	if size > uint64(len(r.data)-r.pos) {
		return "", r.malformed("truncated string")
	}
	end := r.pos + int(size)
	value := string(r.data[r.pos:end])
	r.pos = end
	return value, nil
}

// scalar decodes the next scalar unit into bool, int64, uint64, float64 or string
func (r *Reader) scalar() (interface{}, error) {
	if r.pos >= len(r.data) {
		return nil, r.malformed("unexpected end of input")
	}
	tag := Tag(r.data[r.pos])
	r.pos++
	switch tag {
	case TagNull:
		return nil, nil
	case TagFalse:
		return false, nil
	case TagTrue:
		return true, nil
	case TagInt:
		value, n := stdbinary.Varint(r.data[r.pos:])
		if n <= 0 {
			return nil, r.malformed("invalid varint")
		}
		r.pos += n
		return value, nil
	case TagUint:
		return r.uvarint()
	case TagFloat:
		if len(r.data)-r.pos < 8 {
			return nil, r.malformed("truncated float")
		}
		value := math.Float64frombits(stdbinary.LittleEndian.Uint64(r.data[r.pos:]))
		r.pos += 8
		return value, nil
	case TagString:
		return r.text()
	}
	r.pos--
	return nil, r.malformed("unexpected tag " + strconv.Itoa(int(tag)))
}

func (r *Reader) Consume(kind visitor.Kind, each func(key string) error) (bool, error) {
	switch actual := r.Peek(); actual {
	case kind:
	case visitor.KindNull:
		r.pos++
		return true, nil
	case visitor.KindNone:
		return true, r.malformed("unexpected end of input")
	case visitor.KindError:
		return true, r.malformed("unexpected tag")
	default:
		if r.coerce() {
			return true, visitor.Discard(r)
		}
		return true, fmt.Errorf("%w: expected %v but had %v at %d", visitor.ErrStructuralMismatch, kind, actual, r.pos)
	}
	if !kind.IsComposite() {
		return true, fmt.Errorf("%w: %v is not a composite", visitor.ErrStructuralMismatch, kind)
	}
	r.pos++
	count, err := r.uvarint()
	if err != nil {
		return true, err
	}
	for i := uint64(0); i < count; i++ {
		key := strconv.FormatUint(i, 10)
		if kind == visitor.KindObject {
			if key, err = r.text(); err != nil {
				return true, err
			}
		}
		if err = r.child(key, each); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (r *Reader) child(key string, each func(key string) error) error {
	if kind := r.Peek(); kind == visitor.KindNone || kind == visitor.KindError {
		return r.malformed("invalid value of " + key)
	}
	start := r.pos
	if err := each(key); err != nil {
		return err
	}
	if r.pos == start {
		return fmt.Errorf("%w: value of %q was not consumed", visitor.ErrStructuralMismatch, key)
	}
	return nil
}

// leaf reads next scalar, skip is true for null and skipped composites
func (r *Reader) leaf() (value interface{}, skip bool, err error) {
	switch kind := r.Peek(); kind {
	case visitor.KindObject, visitor.KindArray:
		if r.coerce() {
			return nil, true, visitor.Discard(r)
		}
		return nil, true, fmt.Errorf("%w: unexpected %v at %d", visitor.ErrStructuralMismatch, kind, r.pos)
	}
	value, err = r.scalar()
	return value, value == nil, err
}

func (r *Reader) Null() error {
	switch kind := r.Peek(); kind {
	case visitor.KindNull:
		r.pos++
		return nil
	case visitor.KindNone:
		return r.malformed("unexpected end of input")
	default:
		if r.coerce() {
			return visitor.Discard(r)
		}
		return fmt.Errorf("%w: expected null but had %v at %d", visitor.ErrStructuralMismatch, kind, r.pos)
	}
}

func (r *Reader) Bool(value *bool) error {
	src, skip, err := r.leaf()
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
	src, skip, err := r.leaf()
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
	src, skip, err := r.leaf()
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
	src, skip, err := r.leaf()
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
	src, skip, err := r.leaf()
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
	if len(text) > len(value) && !r.coerce() {
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
