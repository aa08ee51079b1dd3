package lr

import (
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
)

// Named lets a type choose the name it is exposed under.
type Named interface {
	ResourceName() string
}

func NameOf(value any) string {
	if typed, ok := value.(Named); ok {
		return typed.ResourceName()
	}

	return nameOfType(reflect.TypeOf(value))
}

func nameOfType(t reflect.Type) string {
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return strcase.ToKebab(t.Kind().String())
	}

	split := strings.Split(t.String(), ".")
	segments := make([]string, len(split))
	for i, segment := range split {
		segments[i] = strcase.ToKebab(strings.TrimLeft(segment, "*"))
	}

	namespace := segments[0]
	name := strings.Join(segments[1:], "-")
	if name == "" {
		return namespace
	}

	return namespace + ":" + name
}
