package decode

import (
	"errors"
	"fmt"
	"reflect"
)

// Destination returns the value a decoder writes into. v must be a non-nil
// pointer to a slice.
func Destination(v any) (reflect.Value, error) {
	if v == nil {
		return reflect.Value{}, errors.New("destination must be a non-nil pointer")
	}

	rv := reflect.ValueOf(v)

	if rv.Kind() != reflect.Pointer {
		return reflect.Value{}, fmt.Errorf("destination must be a pointer, not %s", rv.Kind())
	}

	if rv.IsNil() {
		return reflect.Value{}, errors.New("destination must be a non-nil pointer")
	}

	if rv.Elem().Kind() != reflect.Slice {
		return reflect.Value{}, fmt.Errorf("destination must point to a slice, not %s", rv.Elem().Kind())
	}

	return rv.Elem(), nil
}
