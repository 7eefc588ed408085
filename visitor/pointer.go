package visitor

import (
	"reflect"
	"unsafe"
)

// pointerShape owns the referenced value: allocated on first non null input, null when absent
type pointerShape struct {
	rType reflect.Type
	elem  *lazyShape
}

func (s *pointerShape) visit(v Visitor, ptr unsafe.Pointer) error {
	target := (*unsafe.Pointer)(ptr)
	kind := v.Peek()
	if kind == KindNull {
		if *target != nil {
			*target = nil
		}
		return v.Null()
	}
	if *target != nil {
		return s.elem.visit(v, *target)
	}
	if kind == KindNone {
		return v.Null()
	}
	item := reflect.New(s.rType.Elem()).UnsafePointer()
	if err := s.elem.visit(v, item); err != nil {
		return err
	}
	*target = item
	return nil
}
