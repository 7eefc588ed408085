package visitor

import (
	"fmt"
	"reflect"
	"sync"
	"time"
	"unsafe"

	"github.com/viant/bindly"
	"github.com/viant/xunsafe"
)

// shape traverses a value of one reflect.Type addressed by ptr
type shape interface {
	visit(v Visitor, ptr unsafe.Pointer) error
}

// lazyShape resolves a child shape on first traversal, letting self referencing types build
type lazyShape struct {
	rType reflect.Type
	once  sync.Once
	shape shape
	err   error
}

func (l *lazyShape) visit(v Visitor, ptr unsafe.Pointer) error {
	l.once.Do(func() {
		l.shape, l.err = shapeOf(l.rType)
	})
	if l.err != nil {
		return l.err
	}
	return l.shape.visit(v, ptr)
}

func lazy(rType reflect.Type) *lazyShape {
	return &lazyShape{rType: rType}
}

var (
	shapes        = NewSyncMap[reflect.Type, shape]()
	visitableType = reflect.TypeOf((*Visitable)(nil)).Elem()
	timeType      = reflect.TypeOf(time.Time{})
)

func shapeOf(rType reflect.Type) (shape, error) {
	if ret, ok := shapes.Get(rType); ok {
		return ret, nil
	}
	ret, err := newShape(rType)
	if err != nil {
		return nil, err
	}
	return shapes.GetOrPut(rType, ret), nil
}

func newShape(rType reflect.Type) (shape, error) {
	if reflect.PointerTo(rType).Implements(visitableType) {
		return &customShape{rType: rType}, nil
	}
	switch rType.Kind() {
	case reflect.Bool:
		return boolShape{}, nil
	case reflect.Int:
		return intShape[int]{}, nil
	case reflect.Int8:
		return intShape[int8]{}, nil
	case reflect.Int16:
		return intShape[int16]{}, nil
	case reflect.Int32:
		return intShape[int32]{}, nil
	case reflect.Int64:
		return intShape[int64]{}, nil
	case reflect.Uint:
		return uintShape[uint]{}, nil
	case reflect.Uint8:
		return uintShape[uint8]{}, nil
	case reflect.Uint16:
		return uintShape[uint16]{}, nil
	case reflect.Uint32:
		return uintShape[uint32]{}, nil
	case reflect.Uint64:
		return uintShape[uint64]{}, nil
	case reflect.Float32:
		return floatShape[float32]{}, nil
	case reflect.Float64:
		return floatShape[float64]{}, nil
	case reflect.String:
		return stringShape{}, nil
	case reflect.Struct:
		if rType == timeType {
			return timeShape{}, nil
		}
		registry, err := bindly.RegistryOf(rType)
		if err != nil {
			return nil, err
		}
		return newRecordShape(registry), nil
	case reflect.Ptr:
		return &pointerShape{rType: rType, elem: lazy(rType.Elem())}, nil
	case reflect.Slice:
		return &sliceShape{rType: rType, xSlice: xunsafe.NewSlice(rType), elem: lazy(rType.Elem())}, nil
	case reflect.Array:
		if rType.Elem().Kind() == reflect.Uint8 {
			return bufferShape{size: rType.Len()}, nil
		}
		return &arrayShape{rType: rType, elem: lazy(rType.Elem())}, nil
	case reflect.Map:
		if rType.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: %s, map key has to be string", ErrUnsupportedType, rType.String())
		}
		return &mapShape{rType: rType, elem: lazy(rType.Elem())}, nil
	case reflect.Interface:
		return &dynamicShape{rType: rType}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, rType.String())
}

type customShape struct {
	rType reflect.Type
}

func (s *customShape) visit(v Visitor, ptr unsafe.Pointer) error {
	return reflect.NewAt(s.rType, ptr).Interface().(Visitable).VisitWith(v)
}
