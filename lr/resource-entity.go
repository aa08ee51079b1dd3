package lr

import (
	"fmt"
	"reflect"
	"sync"
)

// Reader extracts a property value from a backing object. A nil value is absent.
type Reader func(object any) (any, error)

type AttributeDescriptor struct {
	Name      string
	ValueType ValueType
	SQLType   SQLType
	Read      Reader
}

// Value reads the attribute from object. Without a Reader, map objects are looked up by name.
func (a AttributeDescriptor) Value(object any) (any, error) {
	if a.Read != nil {
		return a.Read(object)
	}
	if m, ok := object.(map[string]any); ok {
		return m[a.Name], nil
	}
	return nil, InvalidConfiguration(fmt.Sprintf("attribute %q has no reader for %T", a.Name, object))
}

type RelationshipDescriptor struct {
	Name   string
	Target Described
	ToMany bool
	Read   Reader
}

func (r RelationshipDescriptor) Value(object any) (any, error) {
	if r.Read != nil {
		return r.Read(object)
	}
	if m, ok := object.(map[string]any); ok {
		return m[r.Name], nil
	}
	return nil, InvalidConfiguration(fmt.Sprintf("relationship %q has no reader for %T", r.Name, object))
}

// Described is implemented by anything that exposes an entity descriptor.
type Described interface {
	Descriptor() *EntityDescriptor
}

// EntityDescriptor is the untyped view of a resource entity shared by the encoders.
type EntityDescriptor struct {
	name          string
	id            string
	attributes    []AttributeDescriptor
	relationships []RelationshipDescriptor
	names         map[string]struct{}
	err           error
}

func (d *EntityDescriptor) Descriptor() *EntityDescriptor {
	return d
}

func (d *EntityDescriptor) Name() string {
	return d.name
}

func (d *EntityDescriptor) Err() error {
	return d.err
}

// ID returns the identifier attribute, if one was declared.
func (d *EntityDescriptor) ID() (AttributeDescriptor, bool) {
	if d.id == "" {
		return AttributeDescriptor{}, false
	}
	return d.Attribute(d.id)
}

func (d *EntityDescriptor) Attribute(name string) (AttributeDescriptor, bool) {
	for _, a := range d.attributes {
		if a.Name == name {
			return a, true
		}
	}
	return AttributeDescriptor{}, false
}

// ResourceEntity describes how T is exposed. It is assembled with the builder
// methods, frozen by Build and shared read only afterwards. Relationships may
// reference entities that are still being assembled, which allows cycles.
type ResourceEntity[T any] struct {
	mutex      sync.Mutex
	frozen     bool
	descriptor *EntityDescriptor
}

func NewResourceEntity[T any]() *ResourceEntity[T] {
	var zero T
	name := NameOf(zero)
	if name == "" {
		name = nameOfType(reflect.TypeOf((*T)(nil)).Elem())
	}

	return &ResourceEntity[T]{
		descriptor: &EntityDescriptor{
			name:  name,
			names: map[string]struct{}{},
		},
	}
}

func (e *ResourceEntity[T]) Descriptor() *EntityDescriptor {
	return e.descriptor
}

func (e *ResourceEntity[T]) update(f func(d *EntityDescriptor)) *ResourceEntity[T] {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.frozen {
		e.fail("entity %q modified after Build", e.descriptor.name)
		return e
	}

	f(e.descriptor)
	return e
}

func (e *ResourceEntity[T]) fail(format string, args ...any) {
	if e.descriptor.err == nil {
		e.descriptor.err = InvalidConfiguration(fmt.Sprintf(format, args...))
	}
}

func (e *ResourceEntity[T]) claim(name string) bool {
	if name == "" {
		e.fail("entity %q has a property without a name", e.descriptor.name)
		return false
	}
	if _, ok := e.descriptor.names[name]; ok {
		e.fail("entity %q declares %q more than once", e.descriptor.name, name)
		return false
	}
	e.descriptor.names[name] = struct{}{}
	return true
}

func (e *ResourceEntity[T]) Named(name string) *ResourceEntity[T] {
	return e.update(func(d *EntityDescriptor) { d.name = name })
}

// Attribute appends an attribute. A nil read looks the value up by name in map objects.
func (e *ResourceEntity[T]) Attribute(name string, valueType ValueType, hint SQLType, read func(T) any) *ResourceEntity[T] {
	return e.update(func(d *EntityDescriptor) {
		if !e.claim(name) {
			return
		}
		d.attributes = append(d.attributes, AttributeDescriptor{
			Name:      name,
			ValueType: valueType,
			SQLType:   hint,
			Read:      reader(name, read),
		})
	})
}

// ID appends the identifier attribute. It is encoded like any other attribute
// and is what id references to this entity resolve to.
func (e *ResourceEntity[T]) ID(name string, valueType ValueType, read func(T) any) *ResourceEntity[T] {
	e.Attribute(name, valueType, SQLNone, read)
	return e.update(func(d *EntityDescriptor) {
		if d.id != "" {
			e.fail("entity %q declares more than one id", d.name)
			return
		}
		d.id = name
	})
}

func (e *ResourceEntity[T]) ToOne(name string, target Described, read func(T) any) *ResourceEntity[T] {
	return e.relationship(name, target, false, read)
}

// ToMany appends a to-many relationship. read returns the related objects; Objects adapts typed slices.
func (e *ResourceEntity[T]) ToMany(name string, target Described, read func(T) []any) *ResourceEntity[T] {
	var adapted func(T) any
	if read != nil {
		adapted = func(object T) any {
			related := read(object)
			if related == nil {
				return nil
			}
			return related
		}
	}

	return e.relationship(name, target, true, adapted)
}

func (e *ResourceEntity[T]) relationship(name string, target Described, toMany bool, read func(T) any) *ResourceEntity[T] {
	return e.update(func(d *EntityDescriptor) {
		if target == nil {
			e.fail("relationship %q of %q has no target", name, d.name)
			return
		}
		if !e.claim(name) {
			return
		}
		d.relationships = append(d.relationships, RelationshipDescriptor{
			Name:   name,
			Target: target,
			ToMany: toMany,
			Read:   reader(name, read),
		})
	})
}

// Build freezes the entity and reports any configuration error collected while assembling it.
func (e *ResourceEntity[T]) Build() (*ResourceEntity[T], error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.frozen = true
	if e.descriptor.err != nil {
		return nil, e.descriptor.err
	}

	return e, nil
}

// MustBuild is Build for package level entity declarations.
func (e *ResourceEntity[T]) MustBuild() *ResourceEntity[T] {
	built, err := e.Build()
	if err != nil {
		panic(err)
	}
	return built
}

// Objects adapts a typed slice to the sequence accepted by data encoders.
func (e *ResourceEntity[T]) Objects(items []T) []any {
	return Objects(items)
}

func Objects[T any](items []T) []any {
	objects := make([]any, len(items))
	for i, item := range items {
		objects[i] = item
	}
	return objects
}

func reader[T any](name string, read func(T) any) Reader {
	if read == nil {
		return nil
	}

	return func(object any) (any, error) {
		switch o := object.(type) {
		case T:
			return read(o), nil
		case *T:
			if o == nil {
				return nil, nil
			}
			return read(*o), nil
		default:
			var zero T
			return nil, InvalidConfiguration(fmt.Sprintf("property %q reads %T, got %T", name, zero, object))
		}
	}
}
