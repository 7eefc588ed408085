package bindly

import (
	"fmt"
	"github.com/viant/xunsafe"
	"reflect"
	"strings"
	"unsafe"
)

//Marker field presence marker
type Marker struct {
	t      reflect.Type
	holder *xunsafe.Field
	isPtr  bool
	fields []*xunsafe.Field //marker flag per registry field index
}

//newMarker returns presence marker for a record with a marker holder field, nil otherwise
func newMarker(t reflect.Type, fields []*Field) (*Marker, error) {
	var holder *reflect.StructField
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if IsSetMarker(field.Tag) {
			holder = &field
			break
		}
	}
	if holder == nil {
		return nil, nil
	}
	holderType := holder.Type
	isPtr := holderType.Kind() == reflect.Ptr
	if isPtr {
		holderType = holderType.Elem()
	}
	if holderType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("marker holder %s.%s was not a struct: %s", t.String(), holder.Name, holder.Type.String())
	}
	result := &Marker{t: t, holder: xunsafe.NewField(*holder), isPtr: isPtr, fields: make([]*xunsafe.Field, len(fields))}
	for i := 0; i < holderType.NumField(); i++ {
		markerField := holderType.Field(i)
		if markerField.Type.Kind() != reflect.Bool {
			continue
		}
		for _, field := range fields {
			if markerField.Name == field.Member || strings.EqualFold(markerField.Name, field.Name) {
				result.fields[field.Index] = xunsafe.NewField(markerField)
			}
		}
	}
	return result, nil
}

//CanUseHolder returns true if record holds allocated marker holder
func (p *Marker) CanUseHolder(ptr unsafe.Pointer) bool {
	if p.holder == nil {
		return false
	}
	if p.isPtr {
		return *(*unsafe.Pointer)(p.holder.Pointer(ptr)) != nil
	}
	return true
}

//EnsureHolder allocates marker holder if needed, returns holder pointer
func (p *Marker) EnsureHolder(ptr unsafe.Pointer) unsafe.Pointer {
	holderPtr := p.holder.Pointer(ptr)
	if !p.isPtr {
		return holderPtr
	}
	target := (*unsafe.Pointer)(holderPtr)
	if *target == nil {
		*target = reflect.New(p.holder.Type.Elem()).UnsafePointer()
	}
	return *target
}

func (p *Marker) markerPointer(ptr unsafe.Pointer) unsafe.Pointer {
	holderPtr := p.holder.Pointer(ptr)
	if p.isPtr {
		return *(*unsafe.Pointer)(holderPtr)
	}
	return holderPtr
}

//Set sets field marker, allocating marker holder when needed
func (p *Marker) Set(ptr unsafe.Pointer, index int, flag bool) error {
	if index < 0 || index >= len(p.fields) {
		return fmt.Errorf("field at index %v was out of range for %s", index, p.t.String())
	}
	if p.fields[index] == nil {
		return nil //member without marker flag
	}
	markerPtr := p.EnsureHolder(ptr)
	p.fields[index].SetBool(markerPtr, flag)
	return nil
}

//IsSet returns true if field has been set
func (p *Marker) IsSet(ptr unsafe.Pointer, index int) bool {
	if !p.CanUseHolder(ptr) {
		return true //we do not have field presence provider so we assume all fields are set
	}
	if index < 0 || index >= len(p.fields) || p.fields[index] == nil {
		return false
	}
	return p.fields[index].Bool(p.markerPointer(ptr))
}
