package state

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unsafe"

	"github.com/viant/bindly/conv"
	"github.com/viant/bindly/visitor"
)

var converter = conv.NewConverter(visitor.CoerceMismatch)

//assign sets value into target of supplied type, converting scalars when types differ
func assign(target reflect.Type, ptr unsafe.Pointer, value interface{}, options *pathOptions) error {
	dest := reflect.NewAt(target, ptr).Elem()
	if value == nil {
		dest.Set(reflect.Zero(target))
		return nil
	}
	src := reflect.ValueOf(value)
	if src.Type().AssignableTo(target) {
		dest.Set(src)
		return nil
	}
	if src.Kind() == reflect.Ptr {
		if src.IsNil() {
			dest.Set(reflect.Zero(target))
			return nil
		}
		return assign(target, ptr, src.Elem().Interface(), options)
	}
	if target.Kind() == reflect.Ptr {
		elem := reflect.New(target.Elem())
		if err := assign(target.Elem(), elem.UnsafePointer(), value, options); err != nil {
			return err
		}
		dest.Set(elem)
		return nil
	}
	if target == timeType {
		return assignTime(dest, value, options)
	}
	switch target.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := converter.Int64(value)
		if err != nil {
			return err
		}
		if dest.OverflowInt(v) {
			return fmt.Errorf("%w: %v overflows %s", visitor.ErrStructuralMismatch, v, target)
		}
		dest.SetInt(v)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v, err := converter.Uint64(value)
		if err != nil {
			return err
		}
		if dest.OverflowUint(v) {
			return fmt.Errorf("%w: %v overflows %s", visitor.ErrStructuralMismatch, v, target)
		}
		dest.SetUint(v)
		return nil
	case reflect.Float32, reflect.Float64:
		v, err := converter.Float64(value)
		if err != nil {
			return err
		}
		dest.SetFloat(v)
		return nil
	case reflect.Bool:
		v, err := converter.Bool(value)
		if err != nil {
			return err
		}
		dest.SetBool(v)
		return nil
	case reflect.String:
		v, err := converter.String(value)
		if err != nil {
			return err
		}
		dest.SetString(v)
		return nil
	case reflect.Slice:
		if text, ok := value.(string); ok {
			if target.Elem().Kind() == reflect.Uint8 {
				dest.SetBytes([]byte(text))
				return nil
			}
			return assignRepeated(target, dest, text, options)
		}
		if src.Kind() == reflect.Slice || src.Kind() == reflect.Array {
			return assignItems(target, dest, src, options)
		}
	}
	return fmt.Errorf("%w: cannot assign %T to %s", visitor.ErrUnsupportedType, value, target)
}

//assignRepeated splits comma separated text into slice items
func assignRepeated(target reflect.Type, dest reflect.Value, text string, options *pathOptions) error {
	if strings.TrimSpace(text) == "" {
		dest.Set(reflect.MakeSlice(target, 0, 0))
		return nil
	}
	elements := strings.Split(text, ",")
	items := make([]interface{}, len(elements))
	for i, element := range elements {
		items[i] = strings.TrimSpace(element)
	}
	return assignItems(target, dest, reflect.ValueOf(items), options)
}

func assignItems(target reflect.Type, dest reflect.Value, src reflect.Value, options *pathOptions) error {
	length := src.Len()
	result := reflect.MakeSlice(target, length, length)
	for i := 0; i < length; i++ {
		item := result.Index(i)
		if err := assign(target.Elem(), item.Addr().UnsafePointer(), src.Index(i).Interface(), options); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	dest.Set(result)
	return nil
}

func assignTime(dest reflect.Value, value interface{}, options *pathOptions) error {
	switch actual := value.(type) {
	case string:
		ts, err := time.Parse(options.timeLayout, actual)
		if err != nil {
			return fmt.Errorf("%w: %v", visitor.ErrStructuralMismatch, err)
		}
		dest.Set(reflect.ValueOf(ts))
		return nil
	}
	seconds, err := converter.Int64(value)
	if err != nil {
		return err
	}
	dest.Set(reflect.ValueOf(time.Unix(seconds, 0).UTC()))
	return nil
}
