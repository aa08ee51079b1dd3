package lr

import (
	"fmt"
	"strings"
)

// ValueType is the declared value type of a persistent attribute.
type ValueType int

const (
	ValueOther ValueType = iota
	ValueDate
	ValueTime
	ValueDateTime
	// ValueInstant is a timestamp capable type that may hold a date, a time or
	// both depending on the column it was mapped from.
	ValueInstant
	ValueString
	ValueNumeric
	ValueBoolean
)

var valueTypeNames = map[ValueType]string{
	ValueOther:    "other",
	ValueDate:     "date",
	ValueTime:     "time",
	ValueDateTime: "datetime",
	ValueInstant:  "instant",
	ValueString:   "string",
	ValueNumeric:  "numeric",
	ValueBoolean:  "boolean",
}

func (vt ValueType) String() string {
	if name, ok := valueTypeNames[vt]; ok {
		return name
	}
	return fmt.Sprintf("value-type(%d)", int(vt))
}

func ParseValueType(name string) (ValueType, error) {
	for vt, n := range valueTypeNames {
		if strings.EqualFold(n, name) {
			return vt, nil
		}
	}
	return ValueOther, InvalidConfiguration(fmt.Sprintf("unknown value type %q", name))
}

// SQLType is the legacy column type hint carried by an attribute.
type SQLType int

const (
	SQLNone SQLType = iota
	SQLDate
	SQLTime
	SQLTimestamp
)

var sqlTypeNames = map[SQLType]string{
	SQLNone:      "none",
	SQLDate:      "date",
	SQLTime:      "time",
	SQLTimestamp: "timestamp",
}

func (st SQLType) String() string {
	if name, ok := sqlTypeNames[st]; ok {
		return name
	}
	return fmt.Sprintf("sql-type(%d)", int(st))
}

func ParseSQLType(name string) (SQLType, error) {
	if name == "" {
		return SQLNone, nil
	}
	for st, n := range sqlTypeNames {
		if strings.EqualFold(n, name) {
			return st, nil
		}
	}
	return SQLNone, InvalidConfiguration(fmt.Sprintf("unknown sql type %q", name))
}

// Category is the resolved semantic kind of a property. Encoders are selected by category.
type Category int

const (
	CategoryGeneric Category = iota
	CategoryDate
	CategoryTime
	CategoryDateTime
	CategoryString
	CategoryNumeric
	CategoryBoolean
	CategoryRelationship
	CategoryMetadata
)

var categoryNames = map[Category]string{
	CategoryGeneric:      "generic",
	CategoryDate:         "date",
	CategoryTime:         "time",
	CategoryDateTime:     "datetime",
	CategoryString:       "string",
	CategoryNumeric:      "numeric",
	CategoryBoolean:      "boolean",
	CategoryRelationship: "relationship",
	CategoryMetadata:     "metadata",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

func ParseCategory(name string) (Category, error) {
	for c, n := range categoryNames {
		if strings.EqualFold(n, name) {
			return c, nil
		}
	}
	return CategoryGeneric, InvalidConfiguration(fmt.Sprintf("unknown category %q", name))
}

func (c Category) Temporal() bool {
	return c == CategoryDate || c == CategoryTime || c == CategoryDateTime
}
