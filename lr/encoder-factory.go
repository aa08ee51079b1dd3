package lr

import (
	"sync"
	"time"
)

type FactoryOption func(factory *AttributeEncoderFactory)

// Location sets the zone temporal values are rendered in. Defaults to time.Local.
func Location(location *time.Location) FactoryOption {
	return func(factory *AttributeEncoderFactory) {
		if location != nil {
			factory.location = location
		}
	}
}

func StringConverters(converters StringConverterFactory) FactoryOption {
	return func(factory *AttributeEncoderFactory) {
		if converters != nil {
			factory.converters = converters
		}
	}
}

// AttributeEncoderFactory hands out stateless encoders per category. Encoders
// are created on first use and shared afterwards.
type AttributeEncoderFactory struct {
	resolver   TypeResolver
	location   *time.Location
	converters StringConverterFactory
	encoders   sync.Map
}

func NewAttributeEncoderFactory(overrides map[ValueType]Category, options ...FactoryOption) *AttributeEncoderFactory {
	factory := &AttributeEncoderFactory{
		resolver:   NewTypeResolver(overrides),
		location:   time.Local,
		converters: NewStringConverterFactory(nil),
	}

	for _, option := range options {
		option(factory)
	}

	return factory
}

func (f *AttributeEncoderFactory) Location() *time.Location {
	return f.location
}

func (f *AttributeEncoderFactory) Category(attribute AttributeDescriptor) Category {
	return f.resolver.Resolve(attribute.ValueType, attribute.SQLType)
}

func (f *AttributeEncoderFactory) AttributeEncoder(attribute AttributeDescriptor) Encoder {
	return f.EncoderFor(f.Category(attribute))
}

func (f *AttributeEncoderFactory) EncoderFor(category Category) Encoder {
	if encoder, ok := f.encoders.Load(category); ok {
		return encoder.(Encoder)
	}

	encoder, _ := f.encoders.LoadOrStore(category, f.create(category))
	return encoder.(Encoder)
}

func (f *AttributeEncoderFactory) create(category Category) Encoder {
	switch category {
	case CategoryDate:
		return ISODateEncoder(f.location)
	case CategoryTime:
		return ISOTimeEncoder(f.location)
	case CategoryDateTime:
		return ISODateTimeEncoder(f.location)
	case CategoryString:
		return stringEncoder{convert: f.converters.Converter(ValueString)}
	case CategoryNumeric:
		return numericEncoder{}
	case CategoryBoolean:
		return booleanEncoder{}
	default:
		return genericEncoder{}
	}
}
