package binary

import (
	stdbinary "encoding/binary"
	"fmt"
	"math"

	"github.com/viant/bindly/visitor"
)

type frame struct {
	kind  visitor.Kind
	items int
	buf   []byte
}

// Writer produces tagged binary output, composites are buffered until their count is known
type Writer struct {
	buf    []byte
	frames []*frame
	root   bool
}

// NewWriter creates a writer
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 128)}
}

// Bytes returns written output
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
	return w.frames[len(w.frames)-1]
}

// target returns buffer the next value is appended to
func (w *Writer) target() (*[]byte, error) {
	top := w.top()
	if top == nil {
		if w.root {
			return nil, fmt.Errorf("%w: multiple root values", visitor.ErrStructuralMismatch)
		}
		w.root = true
		return &w.buf, nil
	}
	if top.kind == visitor.KindObject && top.items%2 == 0 {
		return nil, fmt.Errorf("%w: expected object key", visitor.ErrStructuralMismatch)
	}
	top.items++
	return &top.buf, nil
}

func (w *Writer) append(tag Tag, payload func(dst []byte) []byte) error {
	dst, err := w.target()
	if err != nil {
		return err
	}
	*dst = append(*dst, byte(tag))
	if payload != nil {
		*dst = payload(*dst)
	}
	return nil
}

func (w *Writer) ProduceStart(kind visitor.Kind) error {
	if !kind.IsComposite() {
		return fmt.Errorf("%w: cannot open %v", visitor.ErrStructuralMismatch, kind)
	}
	if top := w.top(); top != nil && top.kind == visitor.KindObject && top.items%2 == 0 {
		return fmt.Errorf("%w: expected object key", visitor.ErrStructuralMismatch)
	}
	w.frames = append(w.frames, &frame{kind: kind})
	return nil
}

func (w *Writer) ProduceEnd(kind visitor.Kind) error {
	top := w.top()
	if top == nil || top.kind != kind {
		return fmt.Errorf("%w: unbalanced %v end", visitor.ErrStructuralMismatch, kind)
	}
	count := top.items
	tag := TagArray
	if kind == visitor.KindObject {
		if count%2 != 0 {
			return fmt.Errorf("%w: missing object value", visitor.ErrStructuralMismatch)
		}
		count /= 2
		tag = TagObject
	}
	w.frames = w.frames[:len(w.frames)-1]
	return w.append(tag, func(dst []byte) []byte {
		dst = stdbinary.AppendUvarint(dst, uint64(count))
		return append(dst, top.buf...)
	})
}

func (w *Writer) Null() error {
	return w.append(TagNull, nil)
}

func (w *Writer) Bool(value *bool) error {
	if *value {
		return w.append(TagTrue, nil)
	}
	return w.append(TagFalse, nil)
}

func (w *Writer) Int(value *int64) error {
	return w.append(TagInt, func(dst []byte) []byte {
		return stdbinary.AppendVarint(dst, *value)
	})
}

func (w *Writer) Uint(value *uint64) error {
	return w.append(TagUint, func(dst []byte) []byte {
		return stdbinary.AppendUvarint(dst, *value)
	})
}

func (w *Writer) Float(value *float64) error {
	return w.append(TagFloat, func(dst []byte) []byte {
		return stdbinary.LittleEndian.AppendUint64(dst, math.Float64bits(*value))
	})
}

func appendText(dst []byte, text string) []byte {
	dst = stdbinary.AppendUvarint(dst, uint64(len(text)))
	return append(dst, text...)
}

func (w *Writer) String(value *string) error {
	if top := w.top(); top != nil && top.kind == visitor.KindObject && top.items%2 == 0 {
		top.items++
		top.buf = appendText(top.buf, *value)
		return nil
	}
	return w.append(TagString, func(dst []byte) []byte {
		return appendText(dst, *value)
	})
}

// Buffer writes text up to the first zero byte
func (w *Writer) Buffer(value []byte) error {
	size := len(value)
	for i, c := range value {
		if c == 0 {
			size = i
			break
		}
	}
	text := string(value[:size])
	return w.String(&text)
}
