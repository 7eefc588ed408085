package visitor

import (
	"fmt"
	"time"
	"unsafe"
)

type (
	signed interface {
		~int | ~int8 | ~int16 | ~int32 | ~int64
	}
	unsigned interface {
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
	}
	float interface {
		~float32 | ~float64
	}
)

type boolShape struct{}

func (boolShape) visit(v Visitor, ptr unsafe.Pointer) error {
	target := (*bool)(ptr)
	value := *target
	if err := v.Bool(&value); err != nil {
		return err
	}
	if value != *target {
		*target = value
	}
	return nil
}

type intShape[T signed] struct{}

func (intShape[T]) visit(v Visitor, ptr unsafe.Pointer) error {
	target := (*T)(ptr)
	value := int64(*target)
	if err := v.Int(&value); err != nil {
		return err
	}
	if int64(T(value)) != value {
		return fmt.Errorf("%w: %d overflows %T", ErrStructuralMismatch, value, *target)
	}
	if T(value) != *target {
		*target = T(value)
	}
	return nil
}

type uintShape[T unsigned] struct{}

func (uintShape[T]) visit(v Visitor, ptr unsafe.Pointer) error {
	target := (*T)(ptr)
	value := uint64(*target)
	if err := v.Uint(&value); err != nil {
		return err
	}
	if uint64(T(value)) != value {
		return fmt.Errorf("%w: %d overflows %T", ErrStructuralMismatch, value, *target)
	}
	if T(value) != *target {
		*target = T(value)
	}
	return nil
}

type floatShape[T float] struct{}

func (floatShape[T]) visit(v Visitor, ptr unsafe.Pointer) error {
	target := (*T)(ptr)
	value := float64(*target)
	if err := v.Float(&value); err != nil {
		return err
	}
	if T(value) != *target {
		*target = T(value)
	}
	return nil
}

type stringShape struct{}

func (stringShape) visit(v Visitor, ptr unsafe.Pointer) error {
	target := (*string)(ptr)
	value := *target
	if err := v.String(&value); err != nil {
		return err
	}
	if value != *target {
		*target = value
	}
	return nil
}

// bufferShape visits fixed size byte arrays as text
type bufferShape struct {
	size int
}

func (s bufferShape) visit(v Visitor, ptr unsafe.Pointer) error {
	return v.Buffer(unsafe.Slice((*byte)(ptr), s.size))
}

// timeShape visits time.Time as RFC3339 text
type timeShape struct{}

func (timeShape) visit(v Visitor, ptr unsafe.Pointer) error {
	target := (*time.Time)(ptr)
	formatted := target.Format(time.RFC3339Nano)
	text := formatted
	if err := v.String(&text); err != nil {
		return err
	}
	if text == formatted {
		return nil
	}
	ts, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStructuralMismatch, err)
	}
	*target = ts
	return nil
}
