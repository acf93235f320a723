package internal

import "reflect"

// Value is either a fixed value or a computation evaluated on every read.
type Value struct {
	fixed   any
	compute func() any
}

func Fixed(v any) Value {
	return Value{fixed: v}
}

func Computed(fn func() any) Value {
	if fn == nil {
		panic(NotFunc("computed value"))
	}

	return Value{compute: fn}
}

func (v Value) Get() any {
	if v.compute != nil {
		return v.compute()
	}

	return v.fixed
}

func (v Value) IsComputed() bool {
	return v.compute != nil
}

// Equal uses == when the dynamic values are comparable and
// reflect.DeepEqual otherwise (slices, maps).
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	if va.Comparable() {
		return a == b
	}

	return reflect.DeepEqual(a, b)
}
