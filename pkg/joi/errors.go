package joi

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

var (
	// ErrValidationFailed matches every ValidationFailure via errors.Is.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidSchema matches every SchemaError via errors.Is.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrInvalidPattern is returned when a pattern cannot be compiled.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrConflictingRules is returned when a rule set can never be satisfied.
	ErrConflictingRules = errors.New("conflicting rules")

	// ErrUnknownKind is returned for a record field without a declared kind.
	ErrUnknownKind = errors.New("unknown field kind")
)

// ValidationFailure describes invalid data: the single violated constraint
// of a rule set together with its translation metadata.
type ValidationFailure struct {
	Field   string
	Message string
	Key     string
	Params  map[string]any
}

func (f *ValidationFailure) Error() string {
	if f.Field == "" {
		return f.Message
	}
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

func (f *ValidationFailure) Is(target error) bool {
	return target == ErrValidationFailed
}

// SchemaError describes a malformed rule set. It is never caused by the
// validated value itself.
type SchemaError struct {
	Field string
	Rule  string
	Err   error
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, 4)
	parts = append(parts, ErrInvalidSchema.Error())
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	if e.Rule != "" {
		parts = append(parts, e.Rule)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// IsValidationFailure reports whether err describes invalid data.
func IsValidationFailure(err error) bool {
	if err == nil {
		return false
	}
	var vf *ValidationFailure
	return errors.As(err, &vf)
}

// IsSchemaError reports whether err describes a malformed rule set.
func IsSchemaError(err error) bool {
	if err == nil {
		return false
	}
	var se *SchemaError
	return errors.As(err, &se)
}

// ExtractValidationFailure returns the ValidationFailure wrapped in err, if any.
func ExtractValidationFailure(err error) *ValidationFailure {
	if err == nil {
		return nil
	}
	var vf *ValidationFailure
	if errors.As(err, &vf) {
		return vf
	}
	return nil
}

func cloneParams(params map[string]any) map[string]any {
	if params == nil {
		return nil
	}
	return maps.Clone(params)
}
