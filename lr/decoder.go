package lr

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/weegigs/link-rest-go/internal/decode"
	"github.com/weegigs/link-rest-go/internal/temporal"
)

// Document is a decoded data envelope. Temporal attributes of the entity and
// of inlined related entities are parsed back into time.Time values in the
// service location.
type Document struct {
	Data  []map[string]any
	Total int
}

// Into decodes the data objects into target, usually a pointer to a slice of
// structs. Struct fields are matched by their json tags.
func (d *Document) Into(target any) error {
	if _, err := decode.Destination(target); err != nil {
		return err
	}

	config := &mapstructure.DecoderConfig{
		TagName: "json",
		Result:  target,
	}

	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return err
	}

	return errors.Wrap(decoder.Decode(d.Data), "decode data")
}

// Decode reads a data envelope produced for entity.
func (s *EncoderService) Decode(entity Described, body []byte) (*Document, error) {
	var envelope struct {
		Data  []map[string]any `json:"data"`
		Total *int             `json:"total"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.Wrap(err, "decode envelope")
	}

	if envelope.Total == nil {
		return nil, errors.New("envelope has no total")
	}
	if *envelope.Total != len(envelope.Data) {
		return nil, errors.Errorf("envelope total %d does not match %d objects", *envelope.Total, len(envelope.Data))
	}

	descriptor := entity.Descriptor()
	for _, object := range envelope.Data {
		if err := s.decodeObject(descriptor, object); err != nil {
			return nil, err
		}
	}

	return &Document{Data: envelope.Data, Total: *envelope.Total}, nil
}

func (s *EncoderService) decodeObject(entity *EntityDescriptor, object map[string]any) error {
	if object == nil {
		return nil
	}

	for _, attribute := range entity.attributes {
		category := s.attributes.Category(attribute)
		if !category.Temporal() {
			continue
		}

		value, ok := object[attribute.Name]
		if !ok || value == nil {
			continue
		}

		encoded, ok := value.(string)
		if !ok {
			return UnsupportedValue(attribute.Name, category, value, errors.New("expected a string"))
		}

		parsed, err := temporal.Parse(temporalKind(category), encoded, s.attributes.Location())
		if err != nil {
			return UnsupportedValue(attribute.Name, category, value, err)
		}
		object[attribute.Name] = parsed
	}

	for _, relationship := range entity.relationships {
		target := relationship.Target.Descriptor()
		switch related := object[relationship.Name].(type) {
		case map[string]any:
			if err := s.decodeObject(target, related); err != nil {
				return errors.Wrap(err, fmt.Sprintf("relationship %s", relationship.Name))
			}
		case []any:
			for _, element := range related {
				if nested, ok := element.(map[string]any); ok {
					if err := s.decodeObject(target, nested); err != nil {
						return errors.Wrap(err, fmt.Sprintf("relationship %s", relationship.Name))
					}
				}
			}
		}
	}

	return nil
}

func temporalKind(category Category) temporal.Kind {
	switch category {
	case CategoryDate:
		return temporal.Date
	case CategoryTime:
		return temporal.Time
	default:
		return temporal.DateTime
	}
}
