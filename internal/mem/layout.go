package mem

import (
	"reflect"
	"sync"
	"unsafe"
)

var pointerCache sync.Map // reflect.Type -> bool

// SizeOf returns the size in bytes of one T.
func SizeOf[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// AlignOf returns the alignment of T.
func AlignOf[T any]() uintptr {
	var zero T
	return unsafe.Alignof(zero)
}

// HasPointers reports whether values of T contain Go pointers.
// Strings, slices, maps, channels, functions, interfaces and pointers all do.
func HasPointers[T any]() bool {
	return TypeHasPointers(reflect.TypeFor[T]())
}

// TypeHasPointers is the reflect.Type form of HasPointers.
func TypeHasPointers(t reflect.Type) bool {
	if v, ok := pointerCache.Load(t); ok {
		return v.(bool)
	}
	has := typeHasPointers(t)
	pointerCache.Store(t, has)
	return has
}

func typeHasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && typeHasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if typeHasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
