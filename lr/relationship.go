package lr

import (
	"fmt"
	"strings"
)

// Representation is how a related entity appears inside its parent.
type Representation int

const (
	Inline Representation = iota
	IDReference
	Omit
)

func (r Representation) String() string {
	switch r {
	case Inline:
		return "inline"
	case IDReference:
		return "id"
	case Omit:
		return "omit"
	default:
		return fmt.Sprintf("representation(%d)", int(r))
	}
}

func ParseRepresentation(name string) (Representation, error) {
	switch strings.ToLower(name) {
	case "inline":
		return Inline, nil
	case "id", "id-reference":
		return IDReference, nil
	case "omit":
		return Omit, nil
	default:
		return Inline, InvalidConfiguration(fmt.Sprintf("unknown relationship representation %q", name))
	}
}

type RelationshipMapper interface {
	Representation(entity *EntityDescriptor, relationship RelationshipDescriptor) Representation
}

// NewRelationshipMapper maps relationships through overrides keyed by
// "entity.relationship" or "relationship", falling back to fallback.
func NewRelationshipMapper(fallback Representation, overrides map[string]Representation) RelationshipMapper {
	copied := make(map[string]Representation, len(overrides))
	for key, r := range overrides {
		copied[key] = r
	}

	return relationshipMapper{fallback: fallback, overrides: copied}
}

type relationshipMapper struct {
	fallback  Representation
	overrides map[string]Representation
}

func (m relationshipMapper) Representation(entity *EntityDescriptor, relationship RelationshipDescriptor) Representation {
	if r, ok := m.overrides[entity.Name()+"."+relationship.Name]; ok {
		return r
	}
	if r, ok := m.overrides[relationship.Name]; ok {
		return r
	}
	return m.fallback
}
