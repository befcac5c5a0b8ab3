package core

// validation.go checks form input against a table's field specs before it
// reaches the database. ValidateRecord reports every problem at once so a
// client can mark all bad fields in one round trip.

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors is every problem found in one record.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ValidateRecord cleans, normalizes and checks values keyed by column.
// When partial is false every Required column must be present and
// non-empty. Unknown and identity columns are rejected. The returned map
// holds the cleaned values of the columns that were supplied.
func ValidateRecord(def TableDefinition, values map[string]string, partial bool) (map[string]string, error) {
	var errs ValidationErrors
	cleaned := make(map[string]string, len(values))

	for col, raw := range values {
		spec, ok := def.Spec(col)
		switch {
		case !ok:
			errs = append(errs, ValidationError{Field: col, Message: "column not found"})
			continue
		case spec.Column == def.idColumn():
			errs = append(errs, ValidationError{Field: col, Message: "identity column is read-only"})
			continue
		}

		value, err := cleanValue(spec, raw)
		if err != nil {
			errs = append(errs, ValidationError{Field: spec.Column, Value: raw, Message: err.Error()})
			continue
		}
		cleaned[spec.Column] = value
	}

	if !partial {
		for _, spec := range def.FieldSpecs {
			if spec.Required && spec.Column != def.idColumn() && cleaned[spec.Column] == "" {
				errs = append(errs, ValidationError{Field: spec.Column, Message: "required field is empty"})
			}
		}
	}

	if len(errs) > 0 {
		slices.SortFunc(errs, func(a, b ValidationError) int {
			return strings.Compare(a.Field, b.Field)
		})
		return nil, errs
	}
	return cleaned, nil
}

// cleanValue applies CleanCell and the field's normalizer, then validates.
func cleanValue(spec FieldSpec, raw string) (string, error) {
	value := CleanCell(raw)
	if value != "" && spec.Normalizer != nil {
		value = spec.Normalizer(value)
	}
	if value == "" && spec.Required {
		return "", fmt.Errorf("required field is empty")
	}
	if err := ValidateCell(value, spec); err != nil {
		return "", err
	}
	if spec.Type == FieldEnum {
		for _, ev := range spec.EnumValues {
			if strings.EqualFold(ev, value) {
				return ev, nil
			}
		}
	}
	return value, nil
}

// ValidateCell validates a single cell value against a field specification.
// Returns nil if valid, or an error describing the problem.
func ValidateCell(value string, spec FieldSpec) error {
	if value == "" {
		return nil // stored as NULL
	}

	switch spec.Type {
	case FieldNumeric:
		if !ToPgNumeric(value).Valid {
			return fmt.Errorf("invalid number format")
		}
	case FieldDate:
		if !ToPgDate(value).Valid {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD or similar)")
		}
	case FieldBool:
		if !ToPgBool(value).Valid {
			return fmt.Errorf("must be yes/no, true/false, or 1/0")
		}
	case FieldEnum:
		if len(spec.EnumValues) > 0 {
			for _, ev := range spec.EnumValues {
				if strings.EqualFold(ev, value) {
					return nil
				}
			}
			return fmt.Errorf("invalid enum: value must be one of %s", strings.Join(spec.EnumValues, ", "))
		}
	}
	return nil
}

// fieldTypeName returns a human-readable name for a field type.
func fieldTypeName(ft FieldType) string {
	switch ft {
	case FieldText:
		return "text"
	case FieldEnum:
		return "enum"
	case FieldDate:
		return "date"
	case FieldNumeric:
		return "numeric"
	case FieldBool:
		return "bool"
	default:
		return "value"
	}
}

// String implements fmt.Stringer.
func (ft FieldType) String() string {
	return fieldTypeName(ft)
}

// MarshalText implements encoding.TextMarshaler so table listings carry
// readable type names.
func (ft FieldType) MarshalText() ([]byte, error) {
	return []byte(fieldTypeName(ft)), nil
}
