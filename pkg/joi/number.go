package joi

import (
	"fmt"
	"math"
	"slices"
)

type bound struct {
	set   bool
	value int
}

type intSet struct {
	set    bool
	values []int
}

// with returns a copy extended by values so that rule sets derived from the
// same parent never share a backing array.
func (s intSet) with(values []int) intSet {
	merged := make([]int, 0, len(s.values)+len(values))
	merged = append(merged, s.values...)
	merged = append(merged, values...)
	return intSet{set: true, values: merged}
}

// Number is an immutable rule set for integer values. Every configuration
// method returns an updated copy.
type Number struct {
	min      bound
	max      bound
	disallow intSet
	allow    intSet
	less     bound
	greater  bound
	negative bool
	positive bool
}

// NewNumber returns a rule set with no constraints; it accepts every value.
func NewNumber() Number {
	return Number{}
}

// BuildNumber is an alias for NewNumber.
func BuildNumber() Number {
	return NewNumber()
}

// Minimum requires value >= min.
func (n Number) Minimum(min int) Number {
	n.min = bound{set: true, value: min}
	return n
}

// Maximum requires value <= max.
func (n Number) Maximum(max int) Number {
	n.max = bound{set: true, value: max}
	return n
}

// Disallow blacklists values. Repeated calls accumulate.
func (n Number) Disallow(values ...int) Number {
	n.disallow = n.disallow.with(values)
	return n
}

// Allow whitelists values. Repeated calls accumulate; calling it with no
// values enables an empty whitelist that rejects everything.
func (n Number) Allow(values ...int) Number {
	n.allow = n.allow.with(values)
	return n
}

// Less requires value < limit.
func (n Number) Less(limit int) Number {
	n.less = bound{set: true, value: limit}
	return n
}

// Greater requires value > limit.
func (n Number) Greater(limit int) Number {
	n.greater = bound{set: true, value: limit}
	return n
}

// Negative requires value < 0.
func (n Number) Negative() Number {
	n.negative = true
	return n
}

// Positive requires value >= 0. Zero counts as positive.
func (n Number) Positive() Number {
	n.positive = true
	return n
}

// Validate applies the constraints in a fixed order and stops at the first
// violation: minimum, maximum, blacklist, whitelist, less, greater,
// negative, positive.
func (n Number) Validate(value int) Result {
	if n.min.set && value < n.min.value {
		return fail("validation.min",
			fmt.Sprintf("must be at least %d, got %d", n.min.value, value),
			map[string]any{"min": n.min.value, "value": value})
	}

	if n.max.set && value > n.max.value {
		return fail("validation.max",
			fmt.Sprintf("must be at most %d, got %d", n.max.value, value),
			map[string]any{"max": n.max.value, "value": value})
	}

	if n.disallow.set && slices.Contains(n.disallow.values, value) {
		return fail("validation.blacklist",
			fmt.Sprintf("value %d is in the blacklist", value),
			map[string]any{"value": value})
	}

	if n.allow.set && !slices.Contains(n.allow.values, value) {
		return fail("validation.whitelist",
			fmt.Sprintf("value %d isn't in the whitelist", value),
			map[string]any{"value": value})
	}

	if n.less.set && value >= n.less.value {
		return fail("validation.less",
			fmt.Sprintf("must be less than %d, got %d", n.less.value, value),
			map[string]any{"less": n.less.value, "value": value})
	}

	if n.greater.set && value <= n.greater.value {
		return fail("validation.greater",
			fmt.Sprintf("must be greater than %d, got %d", n.greater.value, value),
			map[string]any{"greater": n.greater.value, "value": value})
	}

	if n.negative && value >= 0 {
		return fail("validation.negative",
			fmt.Sprintf("must be negative, got %d", value),
			map[string]any{"value": value})
	}

	if n.positive && value < 0 {
		return fail("validation.positive",
			fmt.Sprintf("must be positive, got %d", value),
			map[string]any{"value": value})
	}

	return OK()
}

// Check reports configurations that no value can ever satisfy. Validate does
// not call it; schema loaders use it to reject definitions up front.
func (n Number) Check() error {
	if n.greater.set && n.greater.value == math.MaxInt {
		return &SchemaError{Rule: "greater", Err: fmt.Errorf("%w: no value is greater than %d", ErrConflictingRules, n.greater.value)}
	}
	if n.less.set && n.less.value == math.MinInt {
		return &SchemaError{Rule: "less", Err: fmt.Errorf("%w: no value is less than %d", ErrConflictingRules, n.less.value)}
	}
	lo, hi := n.lowest(), n.highest()
	if lo.set && hi.set && lo.value > hi.value {
		return &SchemaError{Rule: "range", Err: fmt.Errorf("%w: lowest accepted value %d exceeds highest %d", ErrConflictingRules, lo.value, hi.value)}
	}
	if n.negative && n.positive {
		return &SchemaError{Rule: "sign", Err: fmt.Errorf("%w: negative and positive are mutually exclusive", ErrConflictingRules)}
	}
	if n.allow.set && len(n.allow.values) == 0 {
		return &SchemaError{Rule: "allow", Err: fmt.Errorf("%w: empty whitelist rejects every value", ErrConflictingRules)}
	}
	return nil
}

// lowest is the smallest value the bound constraints accept.
func (n Number) lowest() bound {
	b := n.min
	if n.greater.set && n.greater.value < math.MaxInt && (!b.set || n.greater.value+1 > b.value) {
		b = bound{set: true, value: n.greater.value + 1}
	}
	if n.positive && (!b.set || b.value < 0) {
		b = bound{set: true, value: 0}
	}
	return b
}

// highest is the largest value the bound constraints accept.
func (n Number) highest() bound {
	b := n.max
	if n.less.set && n.less.value > math.MinInt && (!b.set || n.less.value-1 < b.value) {
		b = bound{set: true, value: n.less.value - 1}
	}
	if n.negative && (!b.set || b.value > -1) {
		b = bound{set: true, value: -1}
	}
	return b
}

// Constraints exposes the configured rules for describing the rule set in
// other formats. The returned slices are copies.
func (n Number) Constraints() NumberConstraints {
	c := NumberConstraints{
		Negative: n.negative,
		Positive: n.positive,
	}
	if n.min.set {
		c.Minimum = ptr(n.min.value)
	}
	if n.max.set {
		c.Maximum = ptr(n.max.value)
	}
	if n.less.set {
		c.Less = ptr(n.less.value)
	}
	if n.greater.set {
		c.Greater = ptr(n.greater.value)
	}
	if n.allow.set {
		c.Allow = slices.Clone(n.allow.values)
		if c.Allow == nil {
			c.Allow = []int{}
		}
	}
	if n.disallow.set {
		c.Disallow = slices.Clone(n.disallow.values)
		if c.Disallow == nil {
			c.Disallow = []int{}
		}
	}
	return c
}

// NumberConstraints is a read-only view of a Number rule set. Nil fields are
// unset.
type NumberConstraints struct {
	Minimum  *int
	Maximum  *int
	Less     *int
	Greater  *int
	Allow    []int
	Disallow []int
	Negative bool
	Positive bool
}

func ptr[T any](v T) *T {
	return &v
}
