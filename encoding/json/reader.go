package json

import (
	"fmt"
	"math"
	"strconv"

	"github.com/viant/bindly/visitor"
)

var (
	_ visitor.Visitor       = (*Reader)(nil)
	_ visitor.NumberSkipper = (*Reader)(nil)
	_ visitor.Visitor       = (*Writer)(nil)
)

// Reader consumes JSON text, child callbacks follow source order
type Reader struct {
	scanner
	options Options
}

// NewReader creates a reader over supplied data
func NewReader(data []byte, opts ...Option) *Reader {
	return &Reader{scanner: scanner{data: data}, options: resolveOptions(opts)}
}

// Offset returns current read position
func (r *Reader) Offset() int {
	return r.pos
}

func (r *Reader) Peek() visitor.Kind {
	r.skipWS()
	if r.eof() {
		return visitor.KindNone
	}
	switch c := r.data[r.pos]; {
	case c == '{':
		return visitor.KindObject
	case c == '[':
		return visitor.KindArray
	case c == '"':
		return visitor.KindString
	case c == 't' || c == 'f':
		return visitor.KindBool
	case c == 'n':
		return visitor.KindNull
	case c == '-' || (c >= '0' && c <= '9'):
		return visitor.KindNumber
	}
	return visitor.KindError
}

func (r *Reader) coerce() bool {
	return r.options.MismatchPolicy == CoerceMismatch
}

func (r *Reader) mismatch(expected, actual visitor.Kind) error {
	return fmt.Errorf("%w: expected %v but had %v at %d", visitor.ErrStructuralMismatch, expected, actual, r.pos)
}

func (r *Reader) unexpected(kind visitor.Kind) error {
	if kind == visitor.KindNone {
		return r.syntaxError("unexpected end of input")
	}
	return r.syntaxError("invalid character '" + string(r.data[r.pos]) + "'")
}

func (r *Reader) null() error {
	if !r.match("null") {
		return r.syntaxError("invalid literal")
	}
	return nil
}

func (r *Reader) Consume(kind visitor.Kind, each func(key string) error) (bool, error) {
	switch actual := r.Peek(); actual {
	case kind:
	case visitor.KindNull:
		return true, r.null()
	case visitor.KindNone, visitor.KindError:
		return true, r.unexpected(actual)
	default:
		if r.coerce() {
			return true, visitor.Discard(r)
		}
		return true, r.mismatch(kind, actual)
	}
	switch kind {
	case visitor.KindObject:
		return true, r.consumeObject(each)
	case visitor.KindArray:
		return true, r.consumeArray(each)
	}
	return true, fmt.Errorf("%w: %v is not a composite", visitor.ErrStructuralMismatch, kind)
}

func (r *Reader) consumeObject(each func(key string) error) error {
	r.pos++
	r.skipWS()
	if !r.eof() && r.data[r.pos] == '}' {
		r.pos++
		return nil
	}
	for {
		r.skipWS()
		key, err := r.parseString()
		if err != nil {
			return err
		}
		if err = r.expect(':'); err != nil {
			return err
		}
		if err = r.child(key, each); err != nil {
			return err
		}
		r.skipWS()
		if r.eof() {
			return r.syntaxError("unexpected end of object")
		}
		switch r.data[r.pos] {
		case '}':
			r.pos++
			return nil
		case ',':
			r.pos++
		default:
			return r.syntaxError("expected ',' or '}'")
		}
	}
}

func (r *Reader) consumeArray(each func(key string) error) error {
	r.pos++
	r.skipWS()
	if !r.eof() && r.data[r.pos] == ']' {
		r.pos++
		return nil
	}
	for index := 0; ; index++ {
		if err := r.child(strconv.Itoa(index), each); err != nil {
			return err
		}
		r.skipWS()
		if r.eof() {
			return r.syntaxError("unexpected end of array")
		}
		switch r.data[r.pos] {
		case ']':
			r.pos++
			return nil
		case ',':
			r.pos++
		default:
			return r.syntaxError("expected ',' or ']'")
		}
	}
}

// child visits one value, a callback has to read exactly one unit
func (r *Reader) child(key string, each func(key string) error) error {
	if kind := r.Peek(); kind == visitor.KindNone || kind == visitor.KindError {
		return r.unexpected(kind)
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

// leaf prepares scalar read, skip is true when the unit was consumed without a value
func (r *Reader) leaf(expected visitor.Kind) (kind visitor.Kind, skip bool, err error) {
	kind = r.Peek()
	switch kind {
	case expected:
		return kind, false, nil
	case visitor.KindNone, visitor.KindError:
		return kind, true, r.unexpected(kind)
	case visitor.KindNull:
		return kind, true, r.null()
	}
	if !r.coerce() {
		return kind, true, r.mismatch(expected, kind)
	}
	if kind.IsComposite() {
		return kind, true, visitor.Discard(r)
	}
	return kind, false, nil
}

func (r *Reader) literal() (bool, error) {
	if r.match("true") {
		return true, nil
	}
	if r.match("false") {
		return false, nil
	}
	return false, r.syntaxError("invalid literal")
}

// text reads string, number or bool unit as text
func (r *Reader) text(kind visitor.Kind) (string, error) {
	switch kind {
	case visitor.KindString:
		return r.parseString()
	case visitor.KindNumber:
		return r.parseNumber()
	}
	value, err := r.literal()
	if err != nil {
		return "", err
	}
	return strconv.FormatBool(value), nil
}

func (r *Reader) Null() error {
	switch kind := r.Peek(); kind {
	case visitor.KindNull:
		return r.null()
	case visitor.KindNone, visitor.KindError:
		return r.unexpected(kind)
	default:
		if r.coerce() {
			return visitor.Discard(r)
		}
		return r.mismatch(visitor.KindNull, kind)
	}
}

func (r *Reader) Bool(value *bool) error {
	kind, skip, err := r.leaf(visitor.KindBool)
	if skip || err != nil {
		return err
	}
	if kind == visitor.KindBool {
		*value, err = r.literal()
		return err
	}
	raw, err := r.text(kind)
	if err != nil {
		return err
	}
	if kind == visitor.KindNumber {
		f, _ := strconv.ParseFloat(raw, 64)
		*value = f != 0
		return nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("%w: %q is not a bool", visitor.ErrStructuralMismatch, raw)
	}
	*value = parsed
	return nil
}

// number reads numeric unit text, coerced bools are reported as 1 or 0
func (r *Reader) number() (string, bool, error) {
	kind, skip, err := r.leaf(visitor.KindNumber)
	if skip || err != nil {
		return "", true, err
	}
	if kind == visitor.KindBool {
		flag, err := r.literal()
		if flag {
			return "1", false, err
		}
		return "0", false, err
	}
	raw, err := r.text(kind)
	return raw, false, err
}

func (r *Reader) Int(value *int64) error {
	raw, skip, err := r.number()
	if skip || err != nil {
		return err
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err == nil {
		*value = parsed
		return nil
	}
	if r.coerce() {
		if f, ferr := strconv.ParseFloat(raw, 64); ferr == nil && f >= math.MinInt64 && f < math.MaxInt64 {
			*value = int64(f)
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not an int64", visitor.ErrStructuralMismatch, raw)
}

func (r *Reader) Uint(value *uint64) error {
	raw, skip, err := r.number()
	if skip || err != nil {
		return err
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err == nil {
		*value = parsed
		return nil
	}
	if r.coerce() {
		if f, ferr := strconv.ParseFloat(raw, 64); ferr == nil && f >= 0 && f < math.MaxUint64 {
			*value = uint64(f)
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not an uint64", visitor.ErrStructuralMismatch, raw)
}

func (r *Reader) Float(value *float64) error {
	raw, skip, err := r.number()
	if skip || err != nil {
		return err
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not a float64", visitor.ErrStructuralMismatch, raw)
	}
	*value = parsed
	return nil
}

// SkipNumber drops number text after grammar check
func (r *Reader) SkipNumber() error {
	if kind := r.Peek(); kind != visitor.KindNumber {
		return r.mismatch(visitor.KindNumber, kind)
	}
	_, err := r.parseNumber()
	return err
}

func (r *Reader) String(value *string) error {
	kind, skip, err := r.leaf(visitor.KindString)
	if skip || err != nil {
		return err
	}
	text, err := r.text(kind)
	if err != nil {
		return err
	}
	*value = text
	return nil
}

// Buffer copies text into value, zero padding the rest
func (r *Reader) Buffer(value []byte) error {
	kind, skip, err := r.leaf(visitor.KindString)
	if skip || err != nil {
		return err
	}
	text, err := r.text(kind)
	if err != nil {
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
