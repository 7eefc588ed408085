package state

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/viant/bindly"
	"github.com/viant/xunsafe"
)

type (
	//Type represents record type with path selectors
	Type struct {
		rType     reflect.Type
		registry  *bindly.Registry
		selectors Selectors
	}

	//State represents a record instance accessed with path selectors
	State struct {
		stateType *Type
		value     interface{}
		ptr       unsafe.Pointer
	}
)

//NewType creates a state type for supplied record or record pointer type
func NewType(rType reflect.Type) (*Type, error) {
	registry, err := bindly.RegistryOf(rType)
	if err != nil {
		return nil, err
	}
	selectors, err := NewSelectors(registry.Type())
	if err != nil {
		return nil, err
	}
	return &Type{rType: registry.Type(), registry: registry, selectors: selectors}, nil
}

//TypeFor creates a state type for record type T
func TypeFor[T any]() (*Type, error) {
	return NewType(reflect.TypeFor[T]())
}

//Lookup returns a selector or nil
func (t *Type) Lookup(name string) *Selector {
	return t.selectors.Lookup(name)
}

//Type returns record type
func (t *Type) Type() reflect.Type {
	return t.rType
}

//Registry returns record registry
func (t *Type) Registry() *bindly.Registry {
	return t.registry
}

//Selectors returns all selectors
func (t *Type) Selectors() Selectors {
	return t.selectors
}

//NewState creates a state with a new record instance
func (t *Type) NewState() *State {
	value := reflect.New(t.rType).Interface()
	return &State{stateType: t, value: value, ptr: xunsafe.AsPointer(value)}
}

//WithValue creates a state for supplied record pointer
func (t *Type) WithValue(value interface{}) (*State, error) {
	valueType := reflect.TypeOf(value)
	if valueType == nil || valueType.Kind() != reflect.Ptr || valueType.Elem() != t.rType {
		return nil, fmt.Errorf("%w: expected *%s, but had %T", bindly.ErrNotRecord, t.rType.String(), value)
	}
	ptr := xunsafe.AsPointer(value)
	if ptr == nil {
		return nil, fmt.Errorf("%w: nil *%s", bindly.ErrNotRecord, t.rType.String())
	}
	return &State{stateType: t, value: value, ptr: ptr}, nil
}

//Type returns state type
func (s *State) Type() *Type {
	return s.stateType
}

//Pointer returns record pointer
func (s *State) Pointer() unsafe.Pointer {
	return s.ptr
}

//State returns record pointer as interface
func (s *State) State() interface{} {
	return s.value
}

//Selector returns selector for supplied path
func (s *State) Selector(aPath string) (*Selector, error) {
	selector := s.stateType.Lookup(aPath)
	if selector == nil {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownPath, s.stateType.rType.String(), aPath)
	}
	return selector, nil
}

//SetValue sets value for supplied path
func (s *State) SetValue(aPath string, value interface{}, opts ...PathOption) error {
	selector, err := s.Selector(aPath)
	if err != nil {
		return err
	}
	return selector.Set(s.ptr, value, opts...)
}

//Value returns value for supplied path
func (s *State) Value(aPath string, opts ...PathOption) (interface{}, error) {
	selector, err := s.Selector(aPath)
	if err != nil {
		return nil, err
	}
	return selector.Value(s.ptr, opts...)
}

//Has returns true if value for supplied path was set
func (s *State) Has(aPath string, opts ...PathOption) (bool, error) {
	selector, err := s.Selector(aPath)
	if err != nil {
		return false, err
	}
	return selector.Has(s.ptr, opts...), nil
}
