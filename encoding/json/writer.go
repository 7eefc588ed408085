package json

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/viant/bindly/visitor"
)

const maxPooledCap = 64 << 10

var writerPool = sync.Pool{New: func() interface{} {
	return &Writer{buf: make([]byte, 0, 256)}
}}

type frame struct {
	kind  visitor.Kind
	items int
}

// Writer produces compact JSON text
type Writer struct {
	buf     []byte
	frames  []frame
	root    bool
	options Options
}

// NewWriter creates a writer
func NewWriter(opts ...Option) *Writer {
	return &Writer{buf: make([]byte, 0, 256), options: resolveOptions(opts)}
}

func acquireWriter(options Options) *Writer {
	w := writerPool.Get().(*Writer)
	w.Reset()
	w.options = options
	return w
}

func releaseWriter(w *Writer) {
	if cap(w.buf) > maxPooledCap {
		w.buf = make([]byte, 0, 256)
	}
	w.Reset()
	writerPool.Put(w)
}

// Reset discards written output
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.frames = w.frames[:0]
	w.root = false
}

// Bytes returns written output, valid until the next Reset
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Complete returns true if a root value was written and all composites closed
func (w *Writer) Complete() bool {
	return w.root && len(w.frames) == 0
}

func (w *Writer) Peek() visitor.Kind {
	return visitor.KindNone
}

func (w *Writer) Consume(visitor.Kind, func(key string) error) (bool, error) {
	return false, nil
}

func (w *Writer) top() *frame {
	if len(w.frames) == 0 {
		return nil
	}
	return &w.frames[len(w.frames)-1]
}

func (w *Writer) beforeValue() error {
	top := w.top()
	if top == nil {
		if w.root {
			return fmt.Errorf("%w: multiple root values", visitor.ErrStructuralMismatch)
		}
		w.root = true
		return nil
	}
	switch top.kind {
	case visitor.KindObject:
		if top.items%2 == 0 {
			return fmt.Errorf("%w: expected object key", visitor.ErrStructuralMismatch)
		}
	case visitor.KindArray:
		if top.items > 0 {
			w.buf = append(w.buf, ',')
		}
	}
	top.items++
	return nil
}

func (w *Writer) ProduceStart(kind visitor.Kind) error {
	if !kind.IsComposite() {
		return fmt.Errorf("%w: cannot open %v", visitor.ErrStructuralMismatch, kind)
	}
	if err := w.beforeValue(); err != nil {
		return err
	}
	if kind == visitor.KindObject {
		w.buf = append(w.buf, '{')
	} else {
		w.buf = append(w.buf, '[')
	}
	w.frames = append(w.frames, frame{kind: kind})
	return nil
}

func (w *Writer) ProduceEnd(kind visitor.Kind) error {
	top := w.top()
	if top == nil || top.kind != kind {
		return fmt.Errorf("%w: unbalanced %v end", visitor.ErrStructuralMismatch, kind)
	}
	if kind == visitor.KindObject {
		if top.items%2 != 0 {
			return fmt.Errorf("%w: missing object value", visitor.ErrStructuralMismatch)
		}
		w.buf = append(w.buf, '}')
	} else {
		w.buf = append(w.buf, ']')
	}
	w.frames = w.frames[:len(w.frames)-1]
	return nil
}

func (w *Writer) Null() error {
	if err := w.beforeValue(); err != nil {
		return err
	}
	w.buf = append(w.buf, "null"...)
	return nil
}

func (w *Writer) Bool(value *bool) error {
	if err := w.beforeValue(); err != nil {
		return err
	}
	w.buf = strconv.AppendBool(w.buf, *value)
	return nil
}

func (w *Writer) Int(value *int64) error {
	if err := w.beforeValue(); err != nil {
		return err
	}
	w.buf = strconv.AppendInt(w.buf, *value, 10)
	return nil
}

func (w *Writer) Uint(value *uint64) error {
	if err := w.beforeValue(); err != nil {
		return err
	}
	w.buf = strconv.AppendUint(w.buf, *value, 10)
	return nil
}

func (w *Writer) Float(value *float64) error {
	f := *value
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: unsupported float value %v", visitor.ErrUnsupportedType, f)
	}
	if err := w.beforeValue(); err != nil {
		return err
	}
	w.buf = appendFloat(w.buf, f)
	return nil
}

func (w *Writer) String(value *string) error {
	if top := w.top(); top != nil && top.kind == visitor.KindObject && top.items%2 == 0 {
		if top.items > 0 {
			w.buf = append(w.buf, ',')
		}
		top.items++
		w.buf = appendQuoted(w.buf, *value, w.options.EscapeHTML)
		w.buf = append(w.buf, ':')
		return nil
	}
	if err := w.beforeValue(); err != nil {
		return err
	}
	w.buf = appendQuoted(w.buf, *value, w.options.EscapeHTML)
	return nil
}

// Buffer writes text up to the first zero byte
func (w *Writer) Buffer(value []byte) error {
	text := string(value[:bufferLen(value)])
	return w.String(&text)
}

func bufferLen(value []byte) int {
	for i, c := range value {
		if c == 0 {
			return i
		}
	}
	return len(value)
}

func appendFloat(dst []byte, f float64) []byte {
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	return strconv.AppendFloat(dst, f, format, -1, 64)
}

const hexDigits = "0123456789abcdef"

func appendQuoted(dst []byte, s string, escapeHTML bool) []byte {
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				dst = append(dst, s[start:i]...)
				dst = append(dst, `�`...)
				i += size
				start = i
				continue
			}
			i += size
			continue
		}
		if c >= 0x20 && c != '"' && c != '\\' && !(escapeHTML && (c == '<' || c == '>' || c == '&')) {
			i++
			continue
		}
		dst = append(dst, s[start:i]...)
		switch c {
		case '"', '\\':
			dst = append(dst, '\\', c)
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
		}
		i++
		start = i
	}
	dst = append(dst, s[start:]...)
	return append(dst, '"')
}
