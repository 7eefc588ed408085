package state

import (
	"fmt"
	"reflect"
	"strings"
	"unsafe"

	"github.com/viant/bindly"
)

type (
	//Selector represents dotted registry field path selector
	Selector struct {
		paths paths
	}

	//Selectors indexed selectors
	Selectors struct {
		Map   map[string]int
		Items []*Selector
		Root  []*Selector
	}
)

func selectors() Selectors {
	return Selectors{Map: make(map[string]int)}
}

//Lookup returns selector for supplied path or nil
func (s Selectors) Lookup(name string) *Selector {
	index, ok := s.Map[name]
	if !ok {
		return nil
	}
	return s.Items[index]
}

//Add adds selector under supplied key
func (s *Selectors) Add(key string, selector *Selector) {
	s.Map[key] = len(s.Items)
	s.Items = append(s.Items, selector)
	if !strings.Contains(key, ".") {
		s.Root = append(s.Root, selector)
	}
}

//Each calls cb for every selector in declaration order
func (s *Selectors) Each(cb func(key string, selector *Selector)) {
	for _, selector := range s.Items {
		cb(selector.Path(), selector)
	}
}

//NewSelectors creates selectors for registry fields of supplied record type and its nested records
func NewSelectors(rType reflect.Type) (Selectors, error) {
	result := selectors()
	registry, err := bindly.RegistryOf(rType)
	if err != nil {
		return result, err
	}
	err = addSelectors(&result, registry, "", nil, map[reflect.Type]bool{registry.Type(): true})
	return result, err
}

func addSelectors(result *Selectors, registry *bindly.Registry, prefix string, ancestors paths, visiting map[reflect.Type]bool) error {
	for _, field := range registry.Fields() {
		step := newPath(registry, field)
		selector := &Selector{paths: append(append(paths{}, ancestors...), step)}
		key := prefix + field.Name
		result.Add(key, selector)
		if step.record == nil || visiting[step.record] {
			continue
		}
		nested, err := bindly.RegistryOf(step.record)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		visiting[step.record] = true
		err = addSelectors(result, nested, key+".", selector.paths, visiting)
		delete(visiting, step.record)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Selector) leaf() *path {
	return s.paths[len(s.paths)-1]
}

//Path returns dotted wire name path
func (s *Selector) Path() string {
	names := make([]string, len(s.paths))
	for i, step := range s.paths {
		names[i] = step.field.Name
	}
	return strings.Join(names, ".")
}

//Name returns leaf field name
func (s *Selector) Name() string {
	return s.leaf().field.Name
}

//Type returns leaf field type
func (s *Selector) Type() reflect.Type {
	return s.leaf().field.Type
}

//Field returns leaf field
func (s *Selector) Field() *bindly.Field {
	return s.leaf().field
}

//target returns leaf value pointer and type, an index selects a slice item
func (s *Selector) target(holder unsafe.Pointer, options *pathOptions) (unsafe.Pointer, reflect.Type, error) {
	leaf := s.leaf()
	ptr := leaf.field.Pointer(holder)
	if leaf.slice == nil || !options.hasIndex() {
		return ptr, leaf.field.Type, nil
	}
	ptr, err := leaf.item(ptr, options)
	return ptr, leaf.field.Type.Elem(), err
}

//Value returns selected value, zero value when an intermediate reference is nil
func (s *Selector) Value(record unsafe.Pointer, opts ...PathOption) (interface{}, error) {
	options := newPathOptions(opts)
	holder, err := s.paths.upstream(record, options, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path(), err)
	}
	rType := s.Type()
	if holder == nil {
		if s.leaf().slice != nil && options.hasIndex() {
			rType = rType.Elem()
		}
		return reflect.Zero(rType).Interface(), nil
	}
	ptr, rType, err := s.target(holder, options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path(), err)
	}
	return reflect.NewAt(rType, ptr).Elem().Interface(), nil
}

//Set sets selected value allocating nil references, presence markers are updated along the path
func (s *Selector) Set(record unsafe.Pointer, value interface{}, opts ...PathOption) error {
	options := newPathOptions(opts)
	holder, err := s.paths.upstream(record, options, true)
	if err != nil {
		return fmt.Errorf("%s: %w", s.Path(), err)
	}
	ptr, rType, err := s.target(holder, options)
	if err == nil {
		err = assign(rType, ptr, value, options)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", s.Path(), err)
	}
	return s.leaf().mark(holder)
}

//Has returns true if selected field was set, records without presence marker report true
func (s *Selector) Has(record unsafe.Pointer, opts ...PathOption) bool {
	holder, err := s.paths.upstream(record, newPathOptions(opts), false)
	if err != nil || holder == nil {
		return false
	}
	leaf := s.leaf()
	if leaf.marker == nil {
		return true
	}
	return leaf.marker.IsSet(holder, leaf.field.Index)
}
