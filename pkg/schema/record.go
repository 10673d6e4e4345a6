package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"github.com/dmitrymomot/joi/pkg/joi"
)

// Field is a named, typed rule set inside a Record.
type Field struct {
	name        string
	description string
	kind        joi.Kind
	num         joi.Number
	str         joi.String
}

// NumberField declares an integer field.
func NumberField(name string, rule joi.Number) Field {
	return Field{name: name, kind: joi.KindNumber, num: rule}
}

// StringField declares a text field.
func StringField(name string, rule joi.String) Field {
	return Field{name: name, kind: joi.KindString, str: rule}
}

// Describe attaches a human readable description used by JSON Schema export.
func (f Field) Describe(description string) Field {
	f.description = description
	return f
}

func (f Field) Name() string           { return f.name }
func (f Field) Description() string    { return f.description }
func (f Field) Kind() joi.Kind         { return f.kind }
func (f Field) NumberRule() joi.Number { return f.num }
func (f Field) StringRule() joi.String { return f.str }

func (f Field) check() error {
	var err error
	switch f.kind {
	case joi.KindNumber:
		err = f.num.Check()
	case joi.KindString:
		err = f.str.Check()
	default:
		err = &joi.SchemaError{Rule: "type", Err: joi.ErrUnknownKind}
	}
	if se, ok := err.(*joi.SchemaError); ok {
		se.Field = f.name
	}
	return err
}

// Record is an ordered list of fields validated together. Records are
// immutable and safe for concurrent use.
type Record struct {
	name        string
	description string
	fields      []Field
}

// NewRecord builds a record and checks every field rule set up front.
// Configuration problems are reported as *joi.SchemaError.
func NewRecord(name string, fields ...Field) (*Record, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFields, name)
	}

	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.name == "" {
			return nil, fmt.Errorf("%w: %s: field", ErrEmptyName, name)
		}
		if _, dup := seen[f.name]; dup {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateField, name, f.name)
		}
		seen[f.name] = struct{}{}
		if err := f.check(); err != nil {
			return nil, err
		}
	}

	return &Record{name: name, fields: slices.Clone(fields)}, nil
}

func (r *Record) Name() string { return r.name }

func (r *Record) Description() string { return r.description }

// Describe returns a copy of the record carrying a description.
func (r *Record) Describe(description string) *Record {
	cp := *r
	cp.description = description
	return &cp
}

// Fields returns the field names in declaration order.
func (r *Record) Fields() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.name
	}
	return names
}

// Validate binds values to the declared fields in order and returns the
// first failure. Binding never coerces: a number field only accepts integral
// numbers and a string field only accepts strings. A missing string field
// binds to "", a missing number field fails as required. Keys not declared
// by the record are ignored.
func (r *Record) Validate(values map[string]any) joi.Result {
	for _, f := range r.fields {
		field, res := f.bind(values[f.name])
		if res.Failed() {
			return res
		}
		if res := field.Validate(); res.Failed() {
			return res
		}
	}
	return joi.OK()
}

func (f Field) bind(raw any) (joi.Field, joi.Result) {
	switch f.kind {
	case joi.KindNumber:
		if raw == nil {
			return joi.Field{}, joi.Invalid(f.name, "validation.required", "is required", nil)
		}
		n, ok, integral := toInt(raw)
		if !ok {
			return joi.Field{}, joi.Invalid(f.name, "validation.type", "must be a number", map[string]any{"type": "number"})
		}
		if !integral {
			return joi.Field{}, joi.Invalid(f.name, "validation.integer", "must be an integer", nil)
		}
		return joi.Int(f.name, n, f.num), joi.OK()

	case joi.KindString:
		if raw == nil {
			return joi.Str(f.name, "", f.str), joi.OK()
		}
		s, ok := raw.(string)
		if !ok {
			return joi.Field{}, joi.Invalid(f.name, "validation.type", "must be a string", map[string]any{"type": "string"})
		}
		return joi.Str(f.name, s, f.str), joi.OK()

	default:
		// NewRecord rejects unknown kinds; the zero joi.Field reports it anyway.
		return joi.Field{}, joi.OK()
	}
}

// toInt reports whether raw is numeric and whether it holds an integral value
// representable as int.
func toInt(raw any) (n int, numeric, integral bool) {
	switch v := raw.(type) {
	case int:
		return v, true, true
	case int8:
		return int(v), true, true
	case int16:
		return int(v), true, true
	case int32:
		return int(v), true, true
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, true, false
		}
		return int(v), true, true
	case uint:
		if v > math.MaxInt {
			return 0, true, false
		}
		return int(v), true, true
	case uint8:
		return int(v), true, true
	case uint16:
		return int(v), true, true
	case uint32:
		return int(v), true, true
	case uint64:
		if v > math.MaxInt {
			return 0, true, false
		}
		return int(v), true, true
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return toInt(i)
		}
		if f, err := v.Float64(); err == nil {
			return floatToInt(f)
		}
		return 0, false, false
	default:
		return 0, false, false
	}
}

func floatToInt(f float64) (int, bool, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, true, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, true, false
	}
	return int(f), true, true
}
