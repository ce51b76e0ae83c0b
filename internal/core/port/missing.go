package port

import "reflect"

// IsMissing reports a nil interface, or one holding a nil pointer, func,
// map, chan or slice, which would panic on first call.
func IsMissing(dep any) bool {
	if dep == nil {
		return true
	}

	v := reflect.ValueOf(dep)

	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Chan, reflect.Interface, reflect.Slice:
		return v.IsNil()
	}

	return false
}
