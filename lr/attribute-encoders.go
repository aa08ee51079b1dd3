package lr

import (
	"database/sql"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pkg/errors"

	"github.com/weegigs/link-rest-go/internal/temporal"
)

func isNil(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// indirect follows pointers. present is false for nil values.
func indirect(value any) (v any, present bool) {
	if value == nil {
		return nil, false
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	return rv.Interface(), true
}

// ISOEncoder formats temporal values as ISO 8601 local dates, times or date-times.
type ISOEncoder struct {
	category Category
	kind     temporal.Kind
	location *time.Location
}

func ISODateEncoder(location *time.Location) ISOEncoder {
	return ISOEncoder{category: CategoryDate, kind: temporal.Date, location: location}
}

func ISOTimeEncoder(location *time.Location) ISOEncoder {
	return ISOEncoder{category: CategoryTime, kind: temporal.Time, location: location}
}

func ISODateTimeEncoder(location *time.Location) ISOEncoder {
	return ISOEncoder{category: CategoryDateTime, kind: temporal.DateTime, location: location}
}

func (e ISOEncoder) Category() Category {
	return e.category
}

func (e ISOEncoder) Encode(name string, value any, out *Generator) (bool, error) {
	local, present, err := temporal.ToLocal(value, e.location)
	if err != nil {
		return false, UnsupportedValue(name, e.category, value, err)
	}
	if !present {
		return false, nil
	}

	out.Name(name)
	out.String(temporal.Format(e.kind, local))
	return true, out.Err()
}

type stringEncoder struct {
	convert StringConverter
}

func (e stringEncoder) Encode(name string, value any, out *Generator) (bool, error) {
	if isNil(value) {
		return false, nil
	}

	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		s = *v
	case []byte:
		s = string(v)
	case sql.NullString:
		if !v.Valid {
			return false, nil
		}
		s = v.String
	case pgtype.Text:
		if !v.Valid {
			return false, nil
		}
		s = v.String
	default:
		converted, err := e.convert(value)
		if err != nil {
			return false, UnsupportedValue(name, CategoryString, value, err)
		}
		s = converted
	}

	out.Name(name)
	out.String(s)
	return true, out.Err()
}

type numericEncoder struct{}

func (numericEncoder) Encode(name string, value any, out *Generator) (bool, error) {
	value, present := indirect(value)
	if !present {
		return false, nil
	}

	write, err := numericWriter(value)
	if err != nil {
		return false, UnsupportedValue(name, CategoryNumeric, value, err)
	}
	if write == nil {
		return false, nil
	}

	out.Name(name)
	write(out)
	return true, out.Err()
}

func finite(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.New("non finite number")
	}
	return nil
}

// numericWriter returns nil, nil for invalid (absent) sql and pg values.
func numericWriter(value any) (func(*Generator), error) {
	switch v := value.(type) {
	case int:
		return func(g *Generator) { g.Int(int64(v)) }, nil
	case int8:
		return func(g *Generator) { g.Int(int64(v)) }, nil
	case int16:
		return func(g *Generator) { g.Int(int64(v)) }, nil
	case int32:
		return func(g *Generator) { g.Int(int64(v)) }, nil
	case int64:
		return func(g *Generator) { g.Int(v) }, nil
	case uint:
		return func(g *Generator) { g.Uint(uint64(v)) }, nil
	case uint8:
		return func(g *Generator) { g.Uint(uint64(v)) }, nil
	case uint16:
		return func(g *Generator) { g.Uint(uint64(v)) }, nil
	case uint32:
		return func(g *Generator) { g.Uint(uint64(v)) }, nil
	case uint64:
		return func(g *Generator) { g.Uint(v) }, nil
	case float32:
		if err := finite(float64(v)); err != nil {
			return nil, err
		}
		return func(g *Generator) { g.Float32(v) }, nil
	case float64:
		if err := finite(v); err != nil {
			return nil, err
		}
		return func(g *Generator) { g.Float(v) }, nil
	case json.Number:
		if _, err := strconv.ParseFloat(string(v), 64); err != nil {
			return nil, err
		}
		return func(g *Generator) { g.Raw([]byte(v)) }, nil
	case sql.NullInt64:
		if !v.Valid {
			return nil, nil
		}
		return func(g *Generator) { g.Int(v.Int64) }, nil
	case sql.NullInt32:
		if !v.Valid {
			return nil, nil
		}
		return func(g *Generator) { g.Int(int64(v.Int32)) }, nil
	case sql.NullInt16:
		if !v.Valid {
			return nil, nil
		}
		return func(g *Generator) { g.Int(int64(v.Int16)) }, nil
	case sql.NullFloat64:
		if !v.Valid {
			return nil, nil
		}
		if err := finite(v.Float64); err != nil {
			return nil, err
		}
		return func(g *Generator) { g.Float(v.Float64) }, nil
	case pgtype.Int2:
		if !v.Valid {
			return nil, nil
		}
		return func(g *Generator) { g.Int(int64(v.Int16)) }, nil
	case pgtype.Int4:
		if !v.Valid {
			return nil, nil
		}
		return func(g *Generator) { g.Int(int64(v.Int32)) }, nil
	case pgtype.Int8:
		if !v.Valid {
			return nil, nil
		}
		return func(g *Generator) { g.Int(v.Int64) }, nil
	case pgtype.Float8:
		if !v.Valid {
			return nil, nil
		}
		if err := finite(v.Float64); err != nil {
			return nil, err
		}
		return func(g *Generator) { g.Float(v.Float64) }, nil
	case pgtype.Numeric:
		if !v.Valid {
			return nil, nil
		}
		if v.NaN || v.InfinityModifier != pgtype.Finite {
			return nil, errors.New("non finite number")
		}
		encoded, err := v.MarshalJSON()
		if err != nil {
			return nil, err
		}
		return func(g *Generator) { g.Raw(encoded) }, nil
	default:
		return nil, fmt.Errorf("%T is not a number", value)
	}
}

type booleanEncoder struct{}

func (booleanEncoder) Encode(name string, value any, out *Generator) (bool, error) {
	value, present := indirect(value)
	if !present {
		return false, nil
	}

	var b bool
	switch v := value.(type) {
	case bool:
		b = v
	case sql.NullBool:
		if !v.Valid {
			return false, nil
		}
		b = v.Bool
	case pgtype.Bool:
		if !v.Valid {
			return false, nil
		}
		b = v.Bool
	default:
		return false, UnsupportedValue(name, CategoryBoolean, value, fmt.Errorf("%T is not a boolean", value))
	}

	out.Name(name)
	out.Bool(b)
	return true, out.Err()
}

// genericEncoder writes any value through the generator's jsoniter configuration.
type genericEncoder struct{}

func (genericEncoder) Encode(name string, value any, out *Generator) (bool, error) {
	if isNil(value) {
		return false, nil
	}

	out.Name(name)
	out.Value(value)
	if err := out.Err(); err != nil {
		return false, UnsupportedValue(name, CategoryGeneric, value, err)
	}
	return true, nil
}
