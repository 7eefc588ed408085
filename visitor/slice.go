package visitor

import (
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

// sliceShape appends one element per consumed item, produces items in order
type sliceShape struct {
	rType  reflect.Type
	xSlice *xunsafe.Slice
	elem   *lazyShape
}

func (s *sliceShape) visit(v Visitor, ptr unsafe.Pointer) error {
	consumed, err := v.Consume(KindArray, func(_ string) error {
		slice := reflect.NewAt(s.rType, ptr).Elem()
		slice.Set(reflect.Append(slice, reflect.Zero(s.rType.Elem())))
		index := slice.Len() - 1
		if err := s.elem.visit(v, slice.Index(index).Addr().UnsafePointer()); err != nil {
			return indexError(index, err)
		}
		return nil
	})
	if consumed || err != nil {
		return err
	}
	if err = v.ProduceStart(KindArray); err != nil {
		return err
	}
	length := s.xSlice.Len(ptr)
	for i := 0; i < length; i++ {
		if err = s.elem.visit(v, s.xSlice.PointerAt(ptr, uintptr(i))); err != nil {
			return indexError(i, err)
		}
	}
	return v.ProduceEnd(KindArray)
}

// arrayShape fills fixed positions, surplus input items are discarded
type arrayShape struct {
	rType reflect.Type
	elem  *lazyShape
}

func (s *arrayShape) item(ptr unsafe.Pointer, index int) unsafe.Pointer {
	return unsafe.Add(ptr, uintptr(index)*s.rType.Elem().Size())
}

func (s *arrayShape) visit(v Visitor, ptr unsafe.Pointer) error {
	length := s.rType.Len()
	index := 0
	consumed, err := v.Consume(KindArray, func(_ string) error {
		defer func() { index++ }()
		if index >= length {
			return Discard(v)
		}
		if err := s.elem.visit(v, s.item(ptr, index)); err != nil {
			return indexError(index, err)
		}
		return nil
	})
	if consumed || err != nil {
		return err
	}
	if err = v.ProduceStart(KindArray); err != nil {
		return err
	}
	for i := 0; i < length; i++ {
		if err = s.elem.visit(v, s.item(ptr, i)); err != nil {
			return indexError(i, err)
		}
	}
	return v.ProduceEnd(KindArray)
}
