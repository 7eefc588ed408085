package visitor

import (
	"unsafe"

	"github.com/viant/bindly"
)

// recordShape traverses registry fields of a struct
type recordShape struct {
	registry *bindly.Registry
	fields   []*lazyShape
}

func newRecordShape(registry *bindly.Registry) *recordShape {
	ret := &recordShape{registry: registry, fields: make([]*lazyShape, registry.Len())}
	for i, field := range registry.Fields() {
		ret.fields[i] = lazy(field.Type)
	}
	return ret
}

func (s *recordShape) visit(v Visitor, ptr unsafe.Pointer) error {
	consumed, err := v.Consume(KindObject, func(name string) error {
		return s.consumeField(v, ptr, name)
	})
	if consumed || err != nil {
		return err
	}
	if err = v.ProduceStart(KindObject); err != nil {
		return err
	}
	for i, field := range s.registry.Fields() {
		name := field.Name
		if err = v.String(&name); err != nil {
			return err
		}
		if err = s.fields[i].visit(v, field.Pointer(ptr)); err != nil {
			return fieldError(field.Name, err)
		}
	}
	return v.ProduceEnd(KindObject)
}

func (s *recordShape) consumeField(v Visitor, ptr unsafe.Pointer, name string) error {
	field := s.registry.Lookup(name)
	if field == nil {
		return Discard(v)
	}
	if err := s.fields[field.Index].visit(v, field.Pointer(ptr)); err != nil {
		return fieldError(field.Name, err)
	}
	if marker := s.registry.Marker(); marker != nil {
		return marker.Set(ptr, field.Index, true)
	}
	return nil
}
