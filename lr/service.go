package lr

import (
	"context"
	"fmt"
	"io"
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "link-rest-encoder"

// DefaultFlushThreshold is the buffered size after which the data encoder
// flushes between objects.
const DefaultFlushThreshold = 32 * 1024

type ServiceOption func(service *EncoderService)

func WithLogger(log *zerolog.Logger) ServiceOption {
	return func(service *EncoderService) {
		service.log = log
	}
}

func WithJSON(api jsoniter.API) ServiceOption {
	return func(service *EncoderService) {
		if api != nil {
			service.api = api
		}
	}
}

// WithFlushThreshold sets the flush threshold in bytes. Zero disables intermediate flushes.
func WithFlushThreshold(bytes int) ServiceOption {
	return func(service *EncoderService) {
		service.flushThreshold = bytes
	}
}

// EncoderService assembles data encoders from its configuration. A service is
// immutable after construction and safe for concurrent use; so are the
// encoders it builds.
type EncoderService struct {
	filters        []EncoderFilter
	attributes     *AttributeEncoderFactory
	converters     StringConverterFactory
	relationships  RelationshipMapper
	metadata       map[string]PropertyMetadataEncoder
	api            jsoniter.API
	log            *zerolog.Logger
	flushThreshold int
}

// NewEncoderService creates a service. Nil collaborators fall back to the
// defaults: the standard attribute factory, default string conversion and
// inline relationships. metadata is keyed by "entity.property" or "property".
func NewEncoderService(
	filters []EncoderFilter,
	attributes *AttributeEncoderFactory,
	converters StringConverterFactory,
	relationships RelationshipMapper,
	metadata map[string]PropertyMetadataEncoder,
	options ...ServiceOption,
) *EncoderService {
	if attributes == nil {
		attributes = NewAttributeEncoderFactory(nil)
	}
	if converters == nil {
		converters = NewStringConverterFactory(nil)
	}
	if relationships == nil {
		relationships = NewRelationshipMapper(Inline, nil)
	}

	copied := make(map[string]PropertyMetadataEncoder, len(metadata))
	for key, encoder := range metadata {
		copied[key] = encoder
	}

	service := &EncoderService{
		filters:        append([]EncoderFilter(nil), filters...),
		attributes:     attributes,
		converters:     converters,
		relationships:  relationships,
		metadata:       copied,
		api:            JSON,
		flushThreshold: DefaultFlushThreshold,
	}

	for _, option := range options {
		option(service)
	}
	if service.log == nil {
		service.log = &log.Logger
	}

	return service
}

// DataEncoder is BuildDataEncoder for entities known to be valid. It panics
// with a *ConfigurationError otherwise.
func (s *EncoderService) DataEncoder(entity Described) Encoder {
	encoder, err := s.BuildDataEncoder(entity)
	if err != nil {
		panic(err)
	}
	return encoder
}

// BuildDataEncoder builds the encoder for a {"data": [...], "total": N}
// envelope around objects of entity.
func (s *EncoderService) BuildDataEncoder(entity Described) (Encoder, error) {
	if entity == nil {
		return nil, InvalidConfiguration("data encoder requires an entity")
	}

	descriptor := entity.Descriptor()
	object, err := s.objectEncoder(descriptor, map[*EntityDescriptor]bool{})
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("entity", descriptor.Name()).
		Int("properties", len(object.properties)).
		Msg("built data encoder")

	return dataEncoder{object: object, flushThreshold: s.flushThreshold}, nil
}

// MetadataEncoder describes entity: its name, id and properties in declaration order.
func (s *EncoderService) MetadataEncoder(entity Described) (Encoder, error) {
	if entity == nil {
		return nil, InvalidConfiguration("metadata encoder requires an entity")
	}

	descriptor := entity.Descriptor()
	if err := descriptor.Err(); err != nil {
		return nil, err
	}

	encoder := metadataEncoder{entity: descriptor.Name(), id: descriptor.id}
	for _, attr := range descriptor.attributes {
		encoder.properties = append(encoder.properties, s.attributeInfo(descriptor, attr))
	}
	for _, relationship := range descriptor.relationships {
		encoder.properties = append(encoder.properties, relationshipInfo(descriptor, relationship))
	}

	return encoder, nil
}

// Encode writes objects of entity to w. w is flushed but never closed.
func (s *EncoderService) Encode(ctx context.Context, w io.Writer, entity Described, objects any) (err error) {
	name := ""
	if entity != nil {
		name = entity.Descriptor().Name()
	}

	_, span := otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("encode %s", name), trace.WithAttributes(attribute.String("lr.entity", name)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	encoder, err := s.BuildDataEncoder(entity)
	if err != nil {
		return err
	}

	flattened := sequence(objects)
	span.SetAttributes(attribute.Int("lr.total", len(flattened)))
	return s.Write(w, encoder, flattened)
}

// Write runs encoder over value as a bare JSON document and flushes w.
func (s *EncoderService) Write(w io.Writer, encoder Encoder, value any) error {
	out := NewGenerator(s.api, w)
	defer out.Release()

	if _, err := encoder.Encode("", value, out); err != nil {
		return err
	}

	return out.Flush()
}

func (s *EncoderService) attributeInfo(entity *EntityDescriptor, attr AttributeDescriptor) PropertyInfo {
	return PropertyInfo{
		Entity:    entity.Name(),
		Name:      attr.Name,
		Category:  s.attributes.Category(attr),
		ValueType: attr.ValueType,
		SQLType:   attr.SQLType,
	}
}

func relationshipInfo(entity *EntityDescriptor, relationship RelationshipDescriptor) PropertyInfo {
	return PropertyInfo{
		Entity:       entity.Name(),
		Name:         relationship.Name,
		Category:     CategoryRelationship,
		Relationship: true,
		ToMany:       relationship.ToMany,
		Target:       relationship.Target.Descriptor().Name(),
	}
}

func (s *EncoderService) metadataFor(entity *EntityDescriptor, name string) (PropertyMetadataEncoder, bool) {
	if encoder, ok := s.metadata[entity.Name()+"."+name]; ok {
		return encoder, true
	}
	encoder, ok := s.metadata[name]
	return encoder, ok
}

type property struct {
	name    string
	read    Reader
	encoder Encoder
}

type objectEncoder struct {
	entity     *EntityDescriptor
	properties []property
}

func (e *objectEncoder) Encode(name string, value any, out *Generator) (bool, error) {
	if isNil(value) {
		return false, nil
	}

	out.Name(name)
	out.StartObject()
	for _, p := range e.properties {
		v, err := p.read(value)
		if err != nil {
			return false, err
		}
		if _, err := p.encoder.Encode(p.name, v, out); err != nil {
			return false, err
		}
	}
	out.EndObject()

	return true, out.Err()
}

// objectEncoder builds the encoder for one entity. path holds the entities
// being inlined above it; a relationship back into path is referenced by id,
// or omitted when its target has no id.
func (s *EncoderService) objectEncoder(entity *EntityDescriptor, path map[*EntityDescriptor]bool) (*objectEncoder, error) {
	if err := entity.Err(); err != nil {
		return nil, err
	}

	path[entity] = true
	defer delete(path, entity)

	filters := matching(entity, s.filters)
	encoder := &objectEncoder{entity: entity}

	for _, attr := range entity.attributes {
		base := s.attributes.AttributeEncoder(attr)
		if metadata, ok := s.metadataFor(entity, attr.Name); ok {
			base = metadata(s.attributeInfo(entity, attr), base)
		}

		encoder.properties = append(encoder.properties, property{
			name:    attr.Name,
			read:    attr.Value,
			encoder: Chain(base, filters...),
		})
	}

	for _, relationship := range entity.relationships {
		base, err := s.relationshipEncoder(entity, relationship, path)
		if err != nil {
			return nil, err
		}
		if base == nil {
			continue
		}
		if metadata, ok := s.metadataFor(entity, relationship.Name); ok {
			base = metadata(relationshipInfo(entity, relationship), base)
		}

		encoder.properties = append(encoder.properties, property{
			name:    relationship.Name,
			read:    relationship.Value,
			encoder: Chain(base, filters...),
		})
	}

	return encoder, nil
}

// relationshipEncoder returns nil for omitted relationships.
func (s *EncoderService) relationshipEncoder(entity *EntityDescriptor, relationship RelationshipDescriptor, path map[*EntityDescriptor]bool) (Encoder, error) {
	target := relationship.Target.Descriptor()
	if err := target.Err(); err != nil {
		return nil, err
	}

	representation := s.relationships.Representation(entity, relationship)
	if representation == Inline && path[target] {
		representation = IDReference
		if _, ok := target.ID(); !ok {
			representation = Omit
		}

		s.log.Debug().
			Str("entity", entity.Name()).
			Str("relationship", relationship.Name).
			Str("representation", representation.String()).
			Msg("relationship cycle")
	}

	var element Encoder
	switch representation {
	case Omit:
		return nil, nil
	case IDReference:
		id, ok := target.ID()
		if !ok {
			return nil, InvalidConfiguration(fmt.Sprintf("relationship %q of %q references %q by id, which declares no id", relationship.Name, entity.Name(), target.Name()))
		}
		element = idEncoder{id: id, encoder: s.idAttributeEncoder(id)}
	default:
		object, err := s.objectEncoder(target, path)
		if err != nil {
			return nil, err
		}
		element = object
	}

	if relationship.ToMany {
		return listEncoder{element: element}, nil
	}
	return element, nil
}

// idAttributeEncoder renders ids of generic category through the string converters.
func (s *EncoderService) idAttributeEncoder(id AttributeDescriptor) Encoder {
	if s.attributes.Category(id) != CategoryGeneric {
		return s.attributes.AttributeEncoder(id)
	}

	convert := s.converters.Converter(id.ValueType)
	return EncoderFunc(func(name string, value any, out *Generator) (bool, error) {
		if Absent(value) {
			return false, nil
		}
		converted, err := convert(value)
		if err != nil {
			return false, UnsupportedValue(name, CategoryString, value, err)
		}
		out.Name(name)
		out.String(converted)
		return true, out.Err()
	})
}

type idEncoder struct {
	id      AttributeDescriptor
	encoder Encoder
}

func (e idEncoder) Encode(name string, value any, out *Generator) (bool, error) {
	if isNil(value) {
		return false, nil
	}

	id, err := e.id.Value(value)
	if err != nil {
		return false, err
	}
	return e.encoder.Encode(name, id, out)
}

type listEncoder struct {
	element Encoder
}

func (e listEncoder) Encode(name string, value any, out *Generator) (bool, error) {
	if isNil(value) {
		return false, nil
	}

	out.Name(name)
	out.StartArray()
	for _, element := range sequence(value) {
		written, err := e.element.Encode("", element, out)
		if err != nil {
			return false, err
		}
		if !written {
			out.Null()
		}
	}
	out.EndArray()

	return true, out.Err()
}

type dataEncoder struct {
	object         Encoder
	flushThreshold int
}

// Encode accepts a slice of objects, a single object or nil, which encodes
// as an empty result.
func (e dataEncoder) Encode(name string, value any, out *Generator) (bool, error) {
	objects := sequence(value)

	out.Name(name)
	out.StartObject()
	out.Field("data")
	out.StartArray()
	for _, object := range objects {
		written, err := e.object.Encode("", object, out)
		if err != nil {
			return false, err
		}
		if !written {
			out.Null()
		}

		if e.flushThreshold > 0 && out.Buffered() >= e.flushThreshold {
			if err := out.Flush(); err != nil {
				return false, err
			}
		}
	}
	out.EndArray()
	out.Field("total")
	out.Int(int64(len(objects)))
	out.EndObject()

	return true, out.Err()
}

// sequence flattens value into the objects it holds. Slices and arrays yield
// their elements, nil yields nothing and anything else is a single object.
func sequence(value any) []any {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		return v
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		fallthrough
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return []any{value}
		}
		objects := make([]any, rv.Len())
		for i := range objects {
			objects[i] = rv.Index(i).Interface()
		}
		return objects
	default:
		return []any{value}
	}
}
