package bindly

import (
	"reflect"
	"unsafe"
)

//Field describes one reflected record member
type Field struct {
	//Name wire name, unique per record type
	Name string
	//Index declaration position
	Index int
	//Type member type
	Type reflect.Type
	//Member Go struct field name, empty if accessor does not address a top level struct field
	Member string
	access func(record unsafe.Pointer) unsafe.Pointer
}

//Pointer returns member pointer for supplied record pointer
func (f *Field) Pointer(record unsafe.Pointer) unsafe.Pointer {
	return f.access(record)
}

//Value returns member value for supplied record pointer
func (f *Field) Value(record unsafe.Pointer) interface{} {
	return reflect.NewAt(f.Type, f.access(record)).Elem().Interface()
}

//Addr returns addressable member value for supplied record pointer
func (f *Field) Addr(record unsafe.Pointer) reflect.Value {
	return reflect.NewAt(f.Type, f.access(record))
}
