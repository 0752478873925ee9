package types

import "fmt"

// UnknownFieldError is returned when a form field name does not exist on a section entry.
type UnknownFieldError struct {
	Section string
	Field   string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q for %s entry", e.Field, e.Section)
}

// InvalidValueError is returned when a form value cannot be converted to the field type.
type InvalidValueError struct {
	Section string
	Field   string
	Value   string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %s.%s", e.Value, e.Section, e.Field)
}
