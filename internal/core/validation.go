package core

// validation.go checks raw input rows before they are built into typed rows.
//
// Validation happens at two levels:
//  1. Header validation: required columns are present
//  2. Row validation: each cell matches its FieldSpec type
//
// Referential checks across tables live in integrity.go; they run on the
// typed rows once all three tables are loaded.

import (
	"fmt"
	"strings"
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Column name
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationResult contains the result of validating a row.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// RowValidator validates rows against a table's field specifications.
type RowValidator struct {
	specs     []FieldSpec
	headerIdx HeaderIndex
}

// NewRowValidator creates a validator for the given specs and header index.
func NewRowValidator(specs []FieldSpec, headerIdx HeaderIndex) *RowValidator {
	return &RowValidator{
		specs:     specs,
		headerIdx: headerIdx,
	}
}

// ValidateRow validates a row and returns every validation error.
func (v *RowValidator) ValidateRow(row []string) ValidationResult {
	result := ValidationResult{Valid: true}

	for _, spec := range v.specs {
		if err := v.checkField(row, spec); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, *err)
		}
	}

	return result
}

// ValidateRowFirst validates a row and returns the first error only.
func (v *RowValidator) ValidateRowFirst(row []string) error {
	for _, spec := range v.specs {
		if err := v.checkField(row, spec); err != nil {
			return *err
		}
	}
	return nil
}

func (v *RowValidator) checkField(row []string, spec FieldSpec) *ValidationError {
	pos, ok := v.headerIdx[strings.ToLower(spec.Name)]
	if !ok {
		if spec.Required {
			return &ValidationError{Field: spec.Name, Message: "missing required column"}
		}
		return nil
	}

	raw := ""
	if pos < len(row) {
		raw = CleanCell(row[pos])
	}

	if IsNullCell(raw) {
		if spec.Required && !spec.AllowEmpty {
			return &ValidationError{Field: spec.Name, Message: "required field is empty"}
		}
		return nil
	}

	if err := ValidateCell(raw, spec); err != nil {
		return &ValidationError{Field: spec.Name, Value: raw, Message: err.Error()}
	}
	return nil
}

// ValidateCell validates a single non-null cell against a field specification.
func ValidateCell(value string, spec FieldSpec) error {
	if IsNullCell(value) {
		return nil
	}

	switch spec.Type {
	case FieldNumeric:
		if !ToPgFloat8(value).Valid {
			return fmt.Errorf("invalid number %q", value)
		}
	case FieldDate:
		if !ToPgTimestamp(value).Valid {
			return fmt.Errorf("invalid date %q", value)
		}
	}
	return nil
}

// ValidateHeaders checks that all required columns exist in the header.
// Returns the header index, or an error listing every missing column.
func ValidateHeaders(headers []string, specs []FieldSpec) (HeaderIndex, error) {
	idx := MakeHeaderIndex(headers)
	var missing []string

	for _, spec := range specs {
		if !spec.Required {
			continue
		}
		if _, ok := idx[strings.ToLower(spec.Name)]; !ok {
			missing = append(missing, spec.Name)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return idx, nil
}

// ExtraColumns returns the header columns not named by any spec, in header order.
// Blank header cells are skipped.
func ExtraColumns(headers []string, specs []FieldSpec) []string {
	known := make(map[string]bool, len(specs))
	for _, spec := range specs {
		known[strings.ToLower(spec.Name)] = true
	}

	var extra []string
	for _, h := range headers {
		name := CleanCell(h)
		if name == "" || known[strings.ToLower(name)] {
			continue
		}
		extra = append(extra, name)
	}
	return extra
}
