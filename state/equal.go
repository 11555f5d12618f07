package state

import "reflect"

// EqualFunc compares two values for equality.
type EqualFunc[T any] func(a, b T) bool

// EqualComparable compares comparable values with ==.
func EqualComparable[T comparable](a, b T) bool {
	return a == b
}

// EqualStrict reports identity equality.
//
// Comparable values use ==, so NaN never equals itself. Pointers, maps,
// channels and funcs compare by address and slices by backing array, length
// and capacity. Structurally equal but distinct values are never equal, and
// non-comparable structs or arrays always report a change.
func EqualStrict[T any](a, b T) bool {
	return strictEqual(reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem())
}

func strictEqual(a, b reflect.Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch a.Kind() {
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		return strictEqual(a.Elem(), b.Elem())
	case reflect.Slice:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		return a.Pointer() == b.Pointer() && a.Len() == b.Len() && a.Cap() == b.Cap()
	case reflect.Map, reflect.Chan, reflect.Func, reflect.Pointer, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	}
	if !a.Comparable() || !b.Comparable() {
		return false
	}
	return a.Equal(b)
}
