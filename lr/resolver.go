package lr

// Resolve maps a declared value type and its legacy SQL hint to a category.
// The value type wins whenever it is unambiguous; only ValueInstant consults
// the hint, defaulting to a date-time.
func Resolve(valueType ValueType, hint SQLType) Category {
	switch valueType {
	case ValueDate:
		return CategoryDate
	case ValueTime:
		return CategoryTime
	case ValueDateTime:
		return CategoryDateTime
	case ValueInstant:
		switch hint {
		case SQLDate:
			return CategoryDate
		case SQLTime:
			return CategoryTime
		default:
			return CategoryDateTime
		}
	case ValueString:
		return CategoryString
	case ValueNumeric:
		return CategoryNumeric
	case ValueBoolean:
		return CategoryBoolean
	default:
		return CategoryGeneric
	}
}

// TypeResolver resolves categories with per value type overrides taken from configuration.
type TypeResolver struct {
	overrides map[ValueType]Category
}

func NewTypeResolver(overrides map[ValueType]Category) TypeResolver {
	copied := make(map[ValueType]Category, len(overrides))
	for vt, c := range overrides {
		copied[vt] = c
	}

	return TypeResolver{overrides: copied}
}

func (r TypeResolver) Resolve(valueType ValueType, hint SQLType) Category {
	if c, ok := r.overrides[valueType]; ok {
		return c
	}

	return Resolve(valueType, hint)
}
