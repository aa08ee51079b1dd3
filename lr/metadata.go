package lr

// PropertyInfo is what metadata encoders know about a property.
type PropertyInfo struct {
	Entity       string
	Name         string
	Category     Category
	ValueType    ValueType
	SQLType      SQLType
	Relationship bool
	ToMany       bool
	Target       string
}

// PropertyMetadataEncoder builds the encoder used for a property in place of
// its plain encoder. Implementations must close every structure they open.
type PropertyMetadataEncoder func(property PropertyInfo, plain Encoder) Encoder

// TypeHints wraps the plain value with its category: {"type": "date", "value": "2016-03-26"}.
func TypeHints(property PropertyInfo, plain Encoder) Encoder {
	return EncoderFunc(func(name string, value any, out *Generator) (bool, error) {
		if Absent(value) {
			return plain.Encode(name, value, out)
		}

		out.Name(name)
		out.StartObject()
		out.Field("type")
		out.String(property.Category.String())
		out.Field("value")
		written, err := plain.Encode("", value, out)
		if err != nil {
			return false, err
		}
		if !written {
			out.Null()
		}
		out.EndObject()

		return true, out.Err()
	})
}

// PropertyMetadata replaces the value with the property's description.
func PropertyMetadata(property PropertyInfo, _ Encoder) Encoder {
	return EncoderFunc(func(name string, _ any, out *Generator) (bool, error) {
		out.Name(name)
		writePropertyInfo(out, property)
		return true, out.Err()
	})
}

func writePropertyInfo(out *Generator, property PropertyInfo) {
	out.StartObject()
	out.Field("name")
	out.String(property.Name)
	out.Field("category")
	out.String(property.Category.String())
	if property.Relationship {
		out.Field("target")
		out.String(property.Target)
		out.Field("toMany")
		out.Bool(property.ToMany)
	} else {
		out.Field("valueType")
		out.String(property.ValueType.String())
		if property.SQLType != SQLNone {
			out.Field("sqlType")
			out.String(property.SQLType.String())
		}
	}
	out.EndObject()
}

type metadataEncoder struct {
	entity     string
	id         string
	properties []PropertyInfo
}

// Encode ignores value and writes the entity description.
func (e metadataEncoder) Encode(name string, _ any, out *Generator) (bool, error) {
	out.Name(name)
	out.StartObject()
	out.Field("entity")
	out.String(e.entity)
	if e.id != "" {
		out.Field("id")
		out.String(e.id)
	}
	out.Field("properties")
	out.StartArray()
	for _, property := range e.properties {
		writePropertyInfo(out, property)
	}
	out.EndArray()
	out.EndObject()

	return true, out.Err()
}
