package lr

import (
	"encoding"
	"fmt"
)

// StringConverter formats a non temporal scalar as text.
type StringConverter func(value any) (string, error)

type StringConverterFactory interface {
	Converter(valueType ValueType) StringConverter
}

// NewStringConverterFactory returns a factory that uses overrides where present
// and DefaultStringConverter otherwise.
func NewStringConverterFactory(overrides map[ValueType]StringConverter) StringConverterFactory {
	copied := make(map[ValueType]StringConverter, len(overrides))
	for vt, c := range overrides {
		copied[vt] = c
	}

	return stringConverters(copied)
}

type stringConverters map[ValueType]StringConverter

func (s stringConverters) Converter(valueType ValueType) StringConverter {
	if converter, ok := s[valueType]; ok {
		return converter
	}
	return DefaultStringConverter
}

func DefaultStringConverter(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	case encoding.TextMarshaler:
		text, err := v.MarshalText()
		if err != nil {
			return "", err
		}
		return string(text), nil
	case error:
		return v.Error(), nil
	default:
		return fmt.Sprint(v), nil
	}
}
