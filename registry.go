package bindly

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

//Registry represents record type field table, built once on first use
type Registry struct {
	rType  reflect.Type
	fields []*Field
	index  map[string]int
	marker *Marker
	err    error
	built  atomic.Bool
	mux    sync.Mutex
}

var registries sync.Map // map[reflect.Type]*Registry

//RegistryFor returns registry for record type T
func RegistryFor[T any]() (*Registry, error) {
	return RegistryOf(reflect.TypeFor[T]())
}

//RegistryOf returns registry for supplied record type
func RegistryOf(rType reflect.Type) (*Registry, error) {
	if rType = ensureStruct(rType); rType == nil {
		return nil, ErrNotRecord
	}
	if rType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotRecord, rType.String())
	}
	value, ok := registries.Load(rType)
	if !ok {
		value, _ = registries.LoadOrStore(rType, &Registry{rType: rType})
	}
	registry := value.(*Registry)
	if !registry.built.Load() {
		registry.build()
	}
	if registry.err != nil {
		return nil, registry.err
	}
	return registry, nil
}

func ensureStruct(rType reflect.Type) reflect.Type {
	if rType == nil {
		return nil
	}
	if rType.Kind() == reflect.Ptr {
		return rType.Elem()
	}
	return rType
}

func (r *Registry) build() {
	r.mux.Lock()
	defer r.mux.Unlock()
	if r.built.Load() {
		return
	}
	r.err = r.init()
	r.built.Store(true)
}

func (r *Registry) init() error {
	members, err := declarationOf(r.rType).members()
	if err != nil {
		return err
	}
	fields := make([]*Field, 0, len(members))
	index := make(map[string]int, len(members))
	for i, member := range members {
		if _, ok := index[member.name]; ok {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateField, r.rType.String(), member.name)
		}
		index[member.name] = i
		fields = append(fields, &Field{
			Name:   member.name,
			Index:  i,
			Type:   member.rType,
			Member: member.goName,
			access: member.access,
		})
	}
	marker, err := newMarker(r.rType, fields)
	if err != nil {
		return err
	}
	r.fields, r.index, r.marker = fields, index, marker
	return nil
}

//Type returns record type
func (r *Registry) Type() reflect.Type {
	return r.rType
}

//Len returns number of fields
func (r *Registry) Len() int {
	return len(r.fields)
}

//Field returns field at declaration position
func (r *Registry) Field(i int) *Field {
	return r.fields[i]
}

//Fields returns fields in declaration order, callers must not modify returned slice
func (r *Registry) Fields() []*Field {
	return r.fields
}

//Lookup returns field for supplied name or nil
func (r *Registry) Lookup(name string) *Field {
	i, ok := r.index[name]
	if !ok {
		return nil
	}
	return r.fields[i]
}

//Has returns true if registry defines supplied field name
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

//Marker returns presence marker or nil
func (r *Registry) Marker() *Marker {
	return r.marker
}
