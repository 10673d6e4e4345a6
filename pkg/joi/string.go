package joi

import (
	"fmt"
	"math"
	"strings"
)

// unset marks a length constraint that was never configured.
const unset = math.MinInt

// String is an immutable rule set for text values. Every configuration method
// returns an updated copy.
//
// By default minimum, length, pattern and IP failures are only reported when
// the rule set is also Required. Strict switches to independent constraints:
// an empty value on an optional rule set passes as absent, anything else must
// satisfy every configured constraint.
type String struct {
	required  bool
	min       int
	max       int
	length    int
	pattern   string
	alpha     bool
	num       bool
	alphanum  bool
	ip        bool
	lowercase bool
	uppercase bool
	strict    bool
}

// NewString returns a rule set with no constraints; it accepts every value.
func NewString() String {
	return String{
		min:    unset,
		max:    unset,
		length: unset,
	}
}

// BuildString is an alias for NewString.
func BuildString() String {
	return NewString()
}

// Required rejects empty values.
func (s String) Required() String {
	s.required = true
	return s
}

// Minimum requires at least n characters. Negative values leave it unset.
func (s String) Minimum(n int) String {
	s.min = n
	return s
}

// Maximum requires at most n characters. Values below 1 leave it unset.
func (s String) Maximum(n int) String {
	s.max = n
	return s
}

// Length requires exactly n characters. Values below 1 leave it unset.
func (s String) Length(n int) String {
	s.length = n
	return s
}

// Pattern requires the whole value to match the regular expression.
// An empty expression leaves it unset.
func (s String) Pattern(expr string) String {
	s.pattern = expr
	return s
}

// Alpha allows only a-z and A-Z.
func (s String) Alpha() String {
	s.alpha = true
	return s
}

// Num allows only 0-9.
func (s String) Num() String {
	s.num = true
	return s
}

// Alphanum allows only a-z, A-Z and 0-9.
func (s String) Alphanum() String {
	s.alphanum = true
	return s
}

// IP requires a dotted-quad IPv4 address.
func (s String) IP() String {
	s.ip = true
	return s
}

// Lowercase rejects uppercase letters.
func (s String) Lowercase() String {
	s.lowercase = true
	return s
}

// Uppercase rejects lowercase letters.
func (s String) Uppercase() String {
	s.uppercase = true
	return s
}

// Strict decouples "must be present" from "if present, must match".
func (s String) Strict() String {
	s.strict = true
	return s
}

func (s String) minSet() bool    { return s.min >= 0 }
func (s String) maxSet() bool    { return s.max > 0 }
func (s String) lengthSet() bool { return s.length > 0 }

// Validate applies the constraints in a fixed order and stops at the first
// violation: required, minimum, maximum, length, pattern, alpha, num,
// alphanum, ip, lowercase, uppercase.
func (s String) Validate(value string) Result {
	// text ends at the first NUL, as in a fixed-size buffer
	if i := strings.IndexByte(value, 0); i >= 0 {
		value = value[:i]
	}

	// report decides whether min, length, pattern and ip failures surface.
	report := s.required
	if s.strict {
		if !s.required && value == "" {
			// an absent value skips the rules but not a malformed pattern
			if s.pattern != "" {
				if _, err := compilePattern(s.pattern); err != nil {
					return schemaFailure("pattern", err)
				}
			}
			return OK()
		}
		report = true
	}

	if s.required && effectiveLength(value, 1) == 0 {
		return fail("validation.required", "is required", nil)
	}

	if s.minSet() && effectiveLength(value, s.min) < s.min && report {
		return fail("validation.min_length",
			fmt.Sprintf("must be at least %d characters long", s.min),
			map[string]any{"min": s.min})
	}

	if s.maxSet() && effectiveLength(value, s.max+1) > s.max {
		return fail("validation.max_length",
			fmt.Sprintf("must be at most %d characters long", s.max),
			map[string]any{"max": s.max})
	}

	if s.lengthSet() && effectiveLength(value, s.length+1) != s.length && report {
		return fail("validation.exact_length",
			fmt.Sprintf("must be %d characters long", s.length),
			map[string]any{"length": s.length})
	}

	if s.pattern != "" {
		matched, err := matchPattern(s.pattern, value)
		if err != nil {
			return schemaFailure("pattern", err)
		}
		if !matched && report {
			return fail("validation.pattern", "pattern validation failed",
				map[string]any{"pattern": s.pattern})
		}
	}

	if s.alpha && !allBytes(value, isAlpha) {
		return fail("validation.alpha", "can only contain a-z, A-Z", nil)
	}

	if s.num && !allBytes(value, isDigit) {
		return fail("validation.num", "can only contain 0-9", nil)
	}

	if s.alphanum && !allBytes(value, isAlnum) {
		return fail("validation.alphanum", "can only contain a-z, A-Z, and 0-9", nil)
	}

	if s.ip && !isIPv4(value) && report {
		return fail("validation.ip", "IP validation failed", nil)
	}

	if s.lowercase && !allBytes(value, func(c byte) bool { return !isUpper(c) }) {
		return fail("validation.lowercase", "can only contain lowercase characters", nil)
	}

	if s.uppercase && !allBytes(value, func(c byte) bool { return !isLower(c) }) {
		return fail("validation.uppercase", "can only contain uppercase characters", nil)
	}

	return OK()
}

// Check reports malformed configurations: an uncompilable pattern or length
// bounds no value can satisfy. Validate does not call it; schema loaders use
// it to reject definitions up front.
func (s String) Check() error {
	if s.pattern != "" {
		if _, err := compilePattern(s.pattern); err != nil {
			return &SchemaError{Rule: "pattern", Err: err}
		}
	}
	if s.minSet() && s.maxSet() && s.min > s.max {
		return &SchemaError{Rule: "length", Err: fmt.Errorf("%w: minimum %d exceeds maximum %d", ErrConflictingRules, s.min, s.max)}
	}
	if s.lengthSet() && s.maxSet() && s.length > s.max {
		return &SchemaError{Rule: "length", Err: fmt.Errorf("%w: length %d exceeds maximum %d", ErrConflictingRules, s.length, s.max)}
	}
	if s.lengthSet() && s.minSet() && s.length < s.min {
		return &SchemaError{Rule: "length", Err: fmt.Errorf("%w: length %d is below minimum %d", ErrConflictingRules, s.length, s.min)}
	}
	return nil
}

// Constraints exposes the configured rules for describing the rule set in
// other formats. Nil fields are unset.
func (s String) Constraints() StringConstraints {
	c := StringConstraints{
		Required:  s.required,
		Pattern:   s.pattern,
		Alpha:     s.alpha,
		Num:       s.num,
		Alphanum:  s.alphanum,
		IP:        s.ip,
		Lowercase: s.lowercase,
		Uppercase: s.uppercase,
		Strict:    s.strict,
	}
	if s.minSet() {
		c.Minimum = ptr(s.min)
	}
	if s.maxSet() {
		c.Maximum = ptr(s.max)
	}
	if s.lengthSet() {
		c.Length = ptr(s.length)
	}
	return c
}

// StringConstraints is a read-only view of a String rule set.
type StringConstraints struct {
	Required  bool
	Minimum   *int
	Maximum   *int
	Length    *int
	Pattern   string
	Alpha     bool
	Num       bool
	Alphanum  bool
	IP        bool
	Lowercase bool
	Uppercase bool
	Strict    bool
}

// effectiveLength counts bytes up to the first NUL byte or limit, whichever
// comes first. Values written into fixed-size buffers report the same length
// as their growable counterparts.
func effectiveLength(value string, limit int) int {
	n := 0
	for n < limit && n < len(value) && value[n] != 0 {
		n++
	}
	return n
}

func allBytes(value string, ok func(byte) bool) bool {
	for i := 0; i < len(value); i++ {
		if !ok(value[i]) {
			return false
		}
	}
	return true
}

func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }
func isLower(c byte) bool { return 'a' <= c && c <= 'z' }
func isAlpha(c byte) bool { return isUpper(c) || isLower(c) }
func isDigit(c byte) bool { return '0' <= c && c <= '9' }
func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }
