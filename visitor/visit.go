package visitor

import (
	"fmt"
	"reflect"

	"github.com/viant/xunsafe"
)

// Visit traverses value with supplied visitor. Reading requires a non nil pointer,
// writing accepts any value.
func Visit(v Visitor, value interface{}) error {
	if value == nil {
		if v.Peek() == KindNone {
			return v.Null()
		}
		return fmt.Errorf("%w: nil destination", ErrUnsupportedType)
	}
	rType := reflect.TypeOf(value)
	if rType.Kind() == reflect.Ptr {
		ptr := xunsafe.AsPointer(value)
		if ptr == nil {
			if v.Peek() == KindNone {
				return v.Null()
			}
			return fmt.Errorf("%w: nil %s destination", ErrUnsupportedType, rType.String())
		}
		return visitValue(v, rType.Elem(), ptr)
	}
	if v.Peek() != KindNone {
		return fmt.Errorf("%w: non pointer %s destination", ErrUnsupportedType, rType.String())
	}
	holder := reflect.New(rType)
	holder.Elem().Set(reflect.ValueOf(value))
	return visitValue(v, rType, holder.UnsafePointer())
}

// VisitOf traverses typed value with supplied visitor
func VisitOf[T any](v Visitor, value *T) error {
	if value == nil {
		return Visit(v, nil)
	}
	return visitValue(v, reflect.TypeOf(value).Elem(), xunsafe.AsPointer(value))
}

// Discard reads and drops the next input unit
func Discard(v Visitor) error {
	switch kind := v.Peek(); kind {
	case KindNone:
		return nil
	case KindNull:
		return v.Null()
	case KindBool:
		var value bool
		return v.Bool(&value)
	case KindNumber:
		if skipper, ok := v.(NumberSkipper); ok {
			return skipper.SkipNumber()
		}
		var value float64
		return v.Float(&value)
	case KindString:
		var value string
		return v.String(&value)
	case KindObject, KindArray:
		_, err := v.Consume(kind, func(_ string) error {
			return Discard(v)
		})
		return err
	default:
		return fmt.Errorf("%w: unexpected %v", ErrStructuralMismatch, kind)
	}
}
