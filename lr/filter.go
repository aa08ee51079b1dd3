package lr

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// EncoderFilter decorates property encoding. A filter may delegate to next,
// delegate with a different value, or write nothing at all.
type EncoderFilter interface {
	Matches(entity *EntityDescriptor) bool
	Encode(name string, value any, out *Generator, next Encoder) (bool, error)
}

// FilterFunc adapts a function into a filter that applies to every entity.
type FilterFunc func(name string, value any, out *Generator, next Encoder) (bool, error)

func (f FilterFunc) Matches(*EntityDescriptor) bool {
	return true
}

func (f FilterFunc) Encode(name string, value any, out *Generator, next Encoder) (bool, error) {
	return f(name, value, out, next)
}

type filtered struct {
	filter EncoderFilter
	next   Encoder
}

func (f filtered) Encode(name string, value any, out *Generator) (bool, error) {
	return f.filter.Encode(name, value, out, f.next)
}

// Chain wraps base with filters. The first filter is the outermost.
func Chain(base Encoder, filters ...EncoderFilter) Encoder {
	encoder := base
	for i := len(filters) - 1; i >= 0; i-- {
		encoder = filtered{filter: filters[i], next: encoder}
	}

	return encoder
}

func matching(entity *EntityDescriptor, filters []EncoderFilter) []EncoderFilter {
	matched := make([]EncoderFilter, 0, len(filters))
	for _, filter := range filters {
		if filter.Matches(entity) {
			matched = append(matched, filter)
		}
	}

	return matched
}

// Absent reports whether value carries nothing to encode: nil, nil pointers
// and invalid sql or pgtype values.
func Absent(value any) bool {
	if isNil(value) {
		return true
	}

	if valuer, ok := value.(driver.Valuer); ok {
		v, err := valuer.Value()
		return err == nil && v == nil
	}

	return false
}

type NullPolicy int

const (
	OmitNulls NullPolicy = iota
	EmitNulls
)

func (p NullPolicy) String() string {
	if p == EmitNulls {
		return "emit"
	}
	return "omit"
}

func ParseNullPolicy(name string) (NullPolicy, error) {
	switch strings.ToLower(name) {
	case "", "omit":
		return OmitNulls, nil
	case "emit", "null":
		return EmitNulls, nil
	default:
		return OmitNulls, InvalidConfiguration(fmt.Sprintf("unknown null policy %q", name))
	}
}

type nulls struct {
	policy    NullPolicy
	overrides map[string]NullPolicy
}

// Nulls decides what absent values produce: nothing, or an explicit null.
// overrides are keyed by property name.
func Nulls(policy NullPolicy, overrides map[string]NullPolicy) EncoderFilter {
	copied := make(map[string]NullPolicy, len(overrides))
	for name, p := range overrides {
		copied[name] = p
	}

	return nulls{policy: policy, overrides: copied}
}

func (n nulls) Matches(*EntityDescriptor) bool {
	return true
}

func (n nulls) Encode(name string, value any, out *Generator, next Encoder) (bool, error) {
	if !Absent(value) {
		return next.Encode(name, value, out)
	}

	policy := n.policy
	if p, ok := n.overrides[name]; ok {
		policy = p
	}

	if policy == OmitNulls {
		return false, nil
	}

	out.Name(name)
	out.Null()
	return true, out.Err()
}

type propertySet map[string]struct{}

func newPropertySet(names []string) propertySet {
	set := make(propertySet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func (s propertySet) has(name string) bool {
	_, ok := s[name]
	return ok
}

type exclude struct {
	names propertySet
}

// Exclude suppresses the named properties.
func Exclude(names ...string) EncoderFilter {
	return exclude{names: newPropertySet(names)}
}

func (e exclude) Matches(*EntityDescriptor) bool {
	return true
}

func (e exclude) Encode(name string, value any, out *Generator, next Encoder) (bool, error) {
	if e.names.has(name) {
		return false, nil
	}
	return next.Encode(name, value, out)
}

type redact struct {
	mask  string
	names propertySet
}

// Redact replaces present values of the named properties with mask.
func Redact(mask string, names ...string) EncoderFilter {
	return redact{mask: mask, names: newPropertySet(names)}
}

func (r redact) Matches(*EntityDescriptor) bool {
	return true
}

func (r redact) Encode(name string, value any, out *Generator, next Encoder) (bool, error) {
	if !r.names.has(name) || Absent(value) {
		return next.Encode(name, value, out)
	}

	out.Name(name)
	out.String(r.mask)
	return true, out.Err()
}

type forEntity struct {
	entity string
	filter EncoderFilter
}

// ForEntity restricts filter to the entity with the given name.
func ForEntity(entity string, filter EncoderFilter) EncoderFilter {
	return forEntity{entity: entity, filter: filter}
}

func (f forEntity) Matches(entity *EntityDescriptor) bool {
	return entity.Name() == f.entity && f.filter.Matches(entity)
}

func (f forEntity) Encode(name string, value any, out *Generator, next Encoder) (bool, error) {
	return f.filter.Encode(name, value, out, next)
}
