package bindly

import (
	"fmt"
	"github.com/viant/xunsafe"
	"reflect"
	"strings"
	"sync"
	"unsafe"
)

type (
	//Member represents a declared record member
	Member struct {
		name   string
		owner  reflect.Type
		rType  reflect.Type
		goName string
		access func(record unsafe.Pointer) unsafe.Pointer
	}

	declaration struct {
		members  func() ([]Member, error)
		implicit bool
	}
)

var declarations sync.Map // map[reflect.Type]*declaration

//Name returns member name
func (m Member) Name() string {
	return m.name
}

//Type returns member type
func (m Member) Type() reflect.Type {
	return m.rType
}

//Bind creates a member with typed accessor
func Bind[T, F any](name string, accessor func(record *T) *F) Member {
	owner := reflect.TypeFor[T]()
	ret := Member{
		name:  name,
		owner: owner,
		rType: reflect.TypeFor[F](),
		access: func(record unsafe.Pointer) unsafe.Pointer {
			return unsafe.Pointer(accessor((*T)(record)))
		},
	}
	ret.goName = structFieldName(owner, ret.rType, func(record *T) unsafe.Pointer {
		return unsafe.Pointer(accessor(record))
	})
	return ret
}

//structFieldName matches accessor offset with top level struct fields
func structFieldName[T any](owner, rType reflect.Type, accessor func(record *T) unsafe.Pointer) (name string) {
	if owner.Kind() != reflect.Struct {
		return ""
	}
	defer func() {
		if recover() != nil { //accessor reached through a nil reference
			name = ""
		}
	}()
	record := new(T)
	base := uintptr(unsafe.Pointer(record))
	ptr := uintptr(accessor(record))
	if ptr < base || ptr >= base+owner.Size() {
		return ""
	}
	offset := ptr - base
	for i := 0; i < owner.NumField(); i++ {
		field := owner.Field(i)
		if field.Offset == offset && field.Type == rType {
			return field.Name
		}
	}
	return ""
}

//Declare declares ordered record members for type T
func Declare[T any](members ...Member) error {
	rType := reflect.TypeFor[T]()
	if err := validateMembers(rType, members); err != nil {
		return err
	}
	declared := append([]Member(nil), members...)
	return declare(rType, &declaration{members: func() ([]Member, error) {
		return declared, nil
	}})
}

//MustDeclare declares record members or panics
func MustDeclare[T any](members ...Member) {
	if err := Declare[T](members...); err != nil {
		panic(err)
	}
}

//DeclareFunc declares record members produced lazily on the first registry build
func DeclareFunc[T any](fn func() []Member) error {
	rType := reflect.TypeFor[T]()
	return declare(rType, &declaration{members: func() ([]Member, error) {
		members := fn()
		if err := validateMembers(rType, members); err != nil {
			return nil, err
		}
		return members, nil
	}})
}

//DeclareNames declares record members with declaration string i.e "a, sub"
func DeclareNames[T any](names string, opts ...Option) error {
	rType := reflect.TypeFor[T]()
	if rType.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s", ErrNotRecord, rType.String())
	}
	members, err := namedMembers(rType, parseNames(names), newOptions(opts))
	if err != nil {
		return err
	}
	if err = validateMembers(rType, members); err != nil {
		return err
	}
	return declare(rType, &declaration{members: func() ([]Member, error) {
		return members, nil
	}})
}

//Derive declares record members derived from exported struct fields
func Derive[T any](opts ...Option) error {
	rType := reflect.TypeFor[T]()
	if rType.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s", ErrNotRecord, rType.String())
	}
	options := newOptions(opts)
	members := derivedMembers(rType, options)
	if err := validateMembers(rType, members); err != nil {
		return err
	}
	return declare(rType, &declaration{members: func() ([]Member, error) {
		return members, nil
	}})
}

func declare(rType reflect.Type, decl *declaration) error {
	if rType.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s", ErrNotRecord, rType.String())
	}
	existing, loaded := declarations.LoadOrStore(rType, decl)
	if !loaded {
		return nil
	}
	if existing.(*declaration).implicit {
		return fmt.Errorf("%w: %s", ErrAlreadyBuilt, rType.String())
	}
	return fmt.Errorf("%w: %s", ErrAlreadyDeclared, rType.String())
}

//declarationOf returns type declaration, sealing the type with derived members if nothing was declared
func declarationOf(rType reflect.Type) *declaration {
	if existing, ok := declarations.Load(rType); ok {
		return existing.(*declaration)
	}
	implicit := &declaration{implicit: true, members: func() ([]Member, error) {
		return derivedMembers(rType, newOptions(nil)), nil
	}}
	existing, _ := declarations.LoadOrStore(rType, implicit)
	return existing.(*declaration)
}

func validateMembers(rType reflect.Type, members []Member) error {
	if rType.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s", ErrNotRecord, rType.String())
	}
	seen := make(map[string]bool, len(members))
	for _, member := range members {
		if member.owner != rType {
			return fmt.Errorf("%w: %s declared on %v, expected %s", ErrOwnerMismatch, member.name, member.owner, rType.String())
		}
		if seen[member.name] {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateField, rType.String(), member.name)
		}
		seen[member.name] = true
	}
	return nil
}

func derivedMembers(rType reflect.Type, opts *options) []Member {
	var result []Member
	for i := 0; i < rType.NumField(); i++ {
		field := rType.Field(i)
		if !field.IsExported() || IsSetMarker(field.Tag) {
			continue
		}
		name, ok := memberName(field, opts)
		if !ok {
			continue
		}
		result = append(result, fieldMember(rType, field, name))
	}
	return result
}

func namedMembers(rType reflect.Type, names []string, opts *options) ([]Member, error) {
	var result = make([]Member, 0, len(names))
	for _, name := range names {
		field, ok := matchField(rType, name, opts)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownMember, rType.String(), name)
		}
		result = append(result, fieldMember(rType, field, name))
	}
	return result, nil
}

func matchField(rType reflect.Type, name string, opts *options) (reflect.StructField, bool) {
	var candidate *reflect.StructField
	for i := 0; i < rType.NumField(); i++ {
		field := rType.Field(i)
		if !field.IsExported() || IsSetMarker(field.Tag) {
			continue
		}
		if field.Name == name {
			return field, true
		}
		if candidate != nil {
			continue
		}
		if strings.EqualFold(field.Name, name) {
			candidate = &field
			continue
		}
		if wireName, ok := memberName(field, opts); ok && wireName == name {
			candidate = &field
		}
	}
	if candidate == nil {
		return reflect.StructField{}, false
	}
	return *candidate, true
}

func fieldMember(owner reflect.Type, field reflect.StructField, name string) Member {
	xField := xunsafe.NewField(field)
	return Member{
		name:   name,
		owner:  owner,
		rType:  field.Type,
		goName: field.Name,
		access: xField.Pointer,
	}
}
