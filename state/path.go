package state

import (
	"fmt"
	"reflect"
	"time"
	"unsafe"

	"github.com/viant/bindly"
	"github.com/viant/xunsafe"
)

var timeType = reflect.TypeOf(time.Time{})

type (
	//path represents one selector step over a registry field
	path struct {
		field   *bindly.Field
		marker  *bindly.Marker
		record  reflect.Type //nested record type or nil
		isPtr   bool
		slice   *xunsafe.Slice
		itemPtr bool
	}

	paths []*path

	pathOptions struct {
		indexes    []int
		indexPos   int
		timeLayout string
	}

	//PathOption represents path option
	PathOption func(o *pathOptions)
)

func newPath(registry *bindly.Registry, field *bindly.Field) *path {
	ret := &path{field: field, marker: registry.Marker()}
	fieldType := field.Type
	if fieldType.Kind() == reflect.Slice {
		ret.slice = xunsafe.NewSlice(fieldType)
		fieldType = fieldType.Elem()
		ret.itemPtr = fieldType.Kind() == reflect.Ptr
	} else {
		ret.isPtr = fieldType.Kind() == reflect.Ptr
	}
	if fieldType.Kind() == reflect.Ptr {
		fieldType = fieldType.Elem()
	}
	if fieldType.Kind() == reflect.Struct && fieldType != timeType {
		ret.record = fieldType
	}
	return ret
}

func newPathOptions(opts []PathOption) *pathOptions {
	ret := &pathOptions{timeLayout: time.RFC3339Nano}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (o *pathOptions) hasIndex() bool {
	return o.indexPos < len(o.indexes)
}

func (o *pathOptions) nextIndex() (int, bool) {
	if !o.hasIndex() {
		return 0, false
	}
	ret := o.indexes[o.indexPos]
	o.indexPos++
	return ret, true
}

//item returns slice item pointer for the next path index
func (p *path) item(slicePtr unsafe.Pointer, options *pathOptions) (unsafe.Pointer, error) {
	index, ok := options.nextIndex()
	if !ok {
		return nil, fmt.Errorf("%w: %s requires index", ErrIndexOutOfRange, p.field.Name)
	}
	length := p.slice.Len(slicePtr)
	if index < 0 || index >= length {
		return nil, fmt.Errorf("%w: %v, len: %v", ErrIndexOutOfRange, index, length)
	}
	return p.slice.PointerAt(slicePtr, uintptr(index)), nil
}

//pointer returns nested record pointer, nil when a reference is not allocated and allocate is false
func (p *path) pointer(holder unsafe.Pointer, options *pathOptions, allocate bool) (unsafe.Pointer, error) {
	ptr := p.field.Pointer(holder)
	isPtr := p.isPtr
	if p.slice != nil {
		var err error
		if ptr, err = p.item(ptr, options); err != nil {
			return nil, err
		}
		isPtr = p.itemPtr
	}
	if !isPtr {
		return ptr, nil
	}
	target := (*unsafe.Pointer)(ptr)
	if *target == nil {
		if !allocate {
			return nil, nil
		}
		*target = reflect.New(p.record).UnsafePointer()
	}
	return *target, nil
}

func (p *path) mark(holder unsafe.Pointer) error {
	if p.marker == nil {
		return nil
	}
	return p.marker.Set(holder, p.field.Index, true)
}

//upstream returns leaf holder pointer, nil if an intermediate reference is not allocated
func (p paths) upstream(ptr unsafe.Pointer, options *pathOptions, allocate bool) (unsafe.Pointer, error) {
	for _, step := range p[:len(p)-1] {
		next, err := step.pointer(ptr, options, allocate)
		if err != nil || next == nil {
			return nil, err
		}
		if allocate {
			if err = step.mark(ptr); err != nil {
				return nil, err
			}
		}
		ptr = next
	}
	return ptr, nil
}

//WithPathIndex returns option with slice indexes, consumed in path order
func WithPathIndex(indexes ...int) PathOption {
	return func(o *pathOptions) {
		o.indexes = indexes
	}
}

//WithTimeLayout returns option with time layout used to parse text into time.Time
func WithTimeLayout(layout string) PathOption {
	return func(o *pathOptions) {
		o.timeLayout = layout
	}
}
