package lr

import (
	"fmt"
)

type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

func InvalidConfiguration(reason string) error {
	return &ConfigurationError{Reason: reason}
}

// UnsupportedValueError reports a value that cannot be represented in its property's category.
type UnsupportedValueError struct {
	Property string
	Category Category
	Value    any
	Cause    error
}

func (e *UnsupportedValueError) Error() string {
	msg := fmt.Sprintf("cannot encode %T as %s", e.Value, e.Category)
	if e.Property != "" {
		msg = fmt.Sprintf("%s for property %q", msg, e.Property)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}

	return msg
}

func (e *UnsupportedValueError) Unwrap() error {
	return e.Cause
}

func UnsupportedValue(property string, category Category, value any, cause error) error {
	return &UnsupportedValueError{
		Property: property,
		Category: category,
		Value:    value,
		Cause:    cause,
	}
}
