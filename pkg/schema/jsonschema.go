package schema

import (
	"encoding/json"
	"strconv"

	"github.com/invopop/jsonschema"

	"github.com/dmitrymomot/joi/pkg/joi"
)

// JSONSchema describes the record as a JSON Schema object. Number fields are
// always listed as required because a missing number fails validation.
//
// Minimum length, exact length, pattern and IPv4 rules of an optional,
// non-strict string field are omitted: they never reject such a value.
//
// String lengths are exported as the byte counts the rules compare, while
// JSON Schema validators count code points. Both agree on ASCII text; for
// other text the export accepts values the rule rejects and the other way
// round. Such fields carry a $comment naming the unit.
func (r *Record) JSONSchema() *jsonschema.Schema {
	props := jsonschema.NewProperties()
	s := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Type:        "object",
		Title:       r.name,
		Description: r.description,
		Properties:  props,
	}

	for _, f := range r.fields {
		switch f.kind {
		case joi.KindNumber:
			props.Set(f.name, numberSchema(f.num.Constraints(), f.description))
			s.Required = append(s.Required, f.name)
		case joi.KindString:
			c := f.str.Constraints()
			props.Set(f.name, stringSchema(c, f.description))
			if c.Required {
				s.Required = append(s.Required, f.name)
			}
		}
	}

	return s
}

// lengthInBytes marks string schemas whose length bounds count UTF-8 bytes.
const lengthInBytes = "minLength and maxLength count UTF-8 bytes"

func numberSchema(c joi.NumberConstraints, description string) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "integer", Description: description}

	lo := c.Minimum
	if c.Positive && (lo == nil || *lo < 0) {
		zero := 0
		lo = &zero
	}
	if lo != nil {
		s.Minimum = jsonNumber(*lo)
	}
	if c.Maximum != nil {
		s.Maximum = jsonNumber(*c.Maximum)
	}

	hi := c.Less
	if c.Negative && (hi == nil || *hi > 0) {
		zero := 0
		hi = &zero
	}
	if hi != nil {
		s.ExclusiveMaximum = jsonNumber(*hi)
	}
	if c.Greater != nil {
		s.ExclusiveMinimum = jsonNumber(*c.Greater)
	}

	switch {
	case c.Allow != nil && len(c.Allow) == 0:
		// an empty whitelist accepts nothing
		s.Not = &jsonschema.Schema{}
		return s
	case c.Allow != nil:
		s.Enum = intsToAny(c.Allow)
	}
	if len(c.Disallow) > 0 {
		s.Not = &jsonschema.Schema{Enum: intsToAny(c.Disallow)}
	}

	return s
}

func stringSchema(c joi.StringConstraints, description string) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "string", Description: description}

	// gated rules only apply to required or strict fields
	gated := c.Required || c.Strict

	if c.Required {
		s.MinLength = uint64Ptr(1)
	}
	if gated && c.Minimum != nil && *c.Minimum > 0 {
		s.MinLength = uint64Ptr(*c.Minimum)
	}
	if c.Maximum != nil {
		s.MaxLength = uint64Ptr(*c.Maximum)
	}
	if gated && c.Length != nil {
		s.MinLength = uint64Ptr(*c.Length)
		s.MaxLength = uint64Ptr(*c.Length)
	}
	if s.MaxLength != nil || (s.MinLength != nil && *s.MinLength > 1) {
		s.Comments = lengthInBytes
	}
	if gated && c.IP {
		s.Format = "ipv4"
	}

	var patterns []string
	if gated && c.Pattern != "" {
		patterns = append(patterns, "^(?:"+c.Pattern+")$")
	}
	if c.Alpha {
		patterns = append(patterns, "^[A-Za-z]*$")
	}
	if c.Num {
		patterns = append(patterns, "^[0-9]*$")
	}
	if c.Alphanum {
		patterns = append(patterns, "^[A-Za-z0-9]*$")
	}
	if c.Lowercase {
		patterns = append(patterns, "^[^A-Z]*$")
	}
	if c.Uppercase {
		patterns = append(patterns, "^[^a-z]*$")
	}

	switch len(patterns) {
	case 0:
	case 1:
		s.Pattern = patterns[0]
	default:
		for _, p := range patterns {
			s.AllOf = append(s.AllOf, &jsonschema.Schema{Pattern: p})
		}
	}

	if c.Strict && !c.Required {
		// an empty optional value is absent and skips every rule
		return &jsonschema.Schema{
			Description: description,
			AnyOf: []*jsonschema.Schema{
				{Type: "string", MaxLength: uint64Ptr(0)},
				withoutDescription(s),
			},
		}
	}

	return s
}

func withoutDescription(s *jsonschema.Schema) *jsonschema.Schema {
	cp := *s
	cp.Description = ""
	return &cp
}

func jsonNumber(v int) json.Number {
	return json.Number(strconv.Itoa(v))
}

func uint64Ptr(v int) *uint64 {
	if v < 0 {
		v = 0
	}
	u := uint64(v)
	return &u
}

func intsToAny(values []int) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
