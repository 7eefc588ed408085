package visitor

import (
	"fmt"
	"reflect"
	"unsafe"
)

// dynamicShape traverses interface values: produce dispatches on the dynamic type,
// consume builds generic values for empty interfaces
type dynamicShape struct {
	rType reflect.Type
}

func (s *dynamicShape) visit(v Visitor, ptr unsafe.Pointer) error {
	target := reflect.NewAt(s.rType, ptr).Elem()
	kind := v.Peek()
	if kind == KindNone {
		if target.IsNil() {
			return v.Null()
		}
		value := target.Elem()
		if value.Kind() == reflect.Ptr && !value.IsNil() {
			return visitValue(v, value.Type().Elem(), value.UnsafePointer())
		}
		holder := reflect.New(value.Type())
		holder.Elem().Set(value)
		return visitValue(v, value.Type(), holder.UnsafePointer())
	}
	if s.rType.NumMethod() > 0 {
		if !target.IsNil() && target.Elem().Kind() == reflect.Ptr && !target.Elem().IsNil() {
			value := target.Elem()
			return visitValue(v, value.Type().Elem(), value.UnsafePointer())
		}
		return fmt.Errorf("%w: cannot allocate %s", ErrUnsupportedType, s.rType.String())
	}
	value, err := consumeDynamic(v, kind)
	if err != nil {
		return err
	}
	if value == nil {
		target.Set(reflect.Zero(s.rType))
		return nil
	}
	target.Set(reflect.ValueOf(value))
	return nil
}

func visitValue(v Visitor, rType reflect.Type, ptr unsafe.Pointer) error {
	aShape, err := shapeOf(rType)
	if err != nil {
		return err
	}
	return aShape.visit(v, ptr)
}

// consumeDynamic reads the next unit into map[string]interface{}, []interface{}, float64, string, bool or nil
func consumeDynamic(v Visitor, kind Kind) (interface{}, error) {
	switch kind {
	case KindNull:
		return nil, v.Null()
	case KindBool:
		var value bool
		return value, v.Bool(&value)
	case KindNumber:
		var value float64
		return value, v.Float(&value)
	case KindString:
		var value string
		return value, v.String(&value)
	case KindObject:
		result := map[string]interface{}{}
		_, err := v.Consume(KindObject, func(key string) error {
			value, err := consumeDynamic(v, v.Peek())
			if err != nil {
				return fieldError(key, err)
			}
			result[key] = value
			return nil
		})
		return result, err
	case KindArray:
		result := []interface{}{}
		_, err := v.Consume(KindArray, func(_ string) error {
			value, err := consumeDynamic(v, v.Peek())
			if err != nil {
				return indexError(len(result), err)
			}
			result = append(result, value)
			return nil
		})
		return result, err
	}
	return nil, fmt.Errorf("%w: unexpected %v", ErrStructuralMismatch, kind)
}
