package promisemux

import (
	"math"
	"reflect"
)

// IsInvocable reports whether h can be registered.
func IsInvocable(h HandlerFunc) bool {
	return h != nil
}

// IsInvocableParam reports whether h can be registered as a parameter handler.
func IsInvocableParam(h ParamHandlerFunc) bool {
	return h != nil
}

// AsDeferred returns v as a Deferred when it implements the interface.
// A typed nil Deferred is not deferred.
func AsDeferred(v any) (Deferred, bool) {
	d, ok := v.(Deferred)
	if !ok || isNil(reflect.ValueOf(d)) {
		return nil, false
	}
	return d, true
}

// IsEmpty reports whether a resolved value is too empty to finalize a
// response: nil, typed nil, false, numeric zero, NaN or "".
// Non-nil empty slices and maps and zero structs are not empty.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	case reflect.Complex64, reflect.Complex128:
		return rv.Complex() == 0
	case reflect.String:
		return rv.Len() == 0
	default:
		return isNil(rv)
	}
}

func isNil(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	case reflect.Invalid:
		return true
	default:
		return false
	}
}
