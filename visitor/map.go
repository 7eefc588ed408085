package visitor

import (
	"reflect"
	"sort"
	"unsafe"
)

// mapShape inserts or updates one entry per consumed key, produces entries in key order
type mapShape struct {
	rType reflect.Type
	elem  *lazyShape
}

func (s *mapShape) visit(v Visitor, ptr unsafe.Pointer) error {
	aMap := reflect.NewAt(s.rType, ptr).Elem()
	consumed, err := v.Consume(KindObject, func(key string) error {
		if aMap.IsNil() {
			aMap.Set(reflect.MakeMap(s.rType))
		}
		keyValue := reflect.ValueOf(key).Convert(s.rType.Key())
		item := reflect.New(s.rType.Elem())
		if existing := aMap.MapIndex(keyValue); existing.IsValid() {
			item.Elem().Set(existing)
		}
		if err := s.elem.visit(v, item.UnsafePointer()); err != nil {
			return fieldError(key, err)
		}
		aMap.SetMapIndex(keyValue, item.Elem())
		return nil
	})
	if consumed || err != nil {
		return err
	}
	if err = v.ProduceStart(KindObject); err != nil {
		return err
	}
	keys := aMap.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	item := reflect.New(s.rType.Elem())
	for _, keyValue := range keys {
		key := keyValue.String()
		if err = v.String(&key); err != nil {
			return err
		}
		item.Elem().Set(aMap.MapIndex(keyValue))
		if err = s.elem.visit(v, item.UnsafePointer()); err != nil {
			return fieldError(key, err)
		}
	}
	return v.ProduceEnd(KindObject)
}
