package joi

// Result is the verdict of an evaluation. A passing result has an empty
// message; a failing one always carries a non-empty message.
type Result struct {
	failed  bool
	message string
	field   string
	key     string
	params  map[string]any
	rule    string
	cause   error // set only for schema errors
}

// OK returns a passing result.
func OK() Result {
	return Result{}
}

// Invalid builds a failing result for a field whose value could not be bound
// to its declared kind, such as a string supplied for a number. An empty
// message yields a generic one so the non-empty message invariant holds.
func Invalid(field, key, message string, params map[string]any) Result {
	if message == "" {
		message = ErrValidationFailed.Error()
	}
	res := fail(key, message, cloneParams(params))
	res.field = field
	return res
}

func fail(key, message string, params map[string]any) Result {
	return Result{
		failed:  true,
		message: message,
		key:     key,
		params:  params,
	}
}

func schemaFailure(rule string, cause error) Result {
	se := &SchemaError{Rule: rule, Err: cause}
	return Result{
		failed:  true,
		message: se.Error(),
		key:     "validation.schema",
		rule:    rule,
		cause:   cause,
	}
}

// Failed reports whether a rule was violated or the rule set is malformed.
func (r Result) Failed() bool { return r.failed }

// Message is the human readable explanation, empty for a passing result.
func (r Result) Message() string { return r.message }

// Field is the record field the result belongs to, empty outside record validation.
func (r Result) Field() string { return r.field }

// Key is the translation key of the violated rule.
func (r Result) Key() string { return r.key }

// Params returns a copy of the values interpolated into the message.
func (r Result) Params() map[string]any { return cloneParams(r.params) }

// IsSchemaError reports whether the failure comes from a malformed rule set
// rather than from the validated value.
func (r Result) IsSchemaError() bool { return r.failed && r.cause != nil }

// Err converts the result into an error: nil when passing, *SchemaError for a
// malformed rule set and *ValidationFailure otherwise.
func (r Result) Err() error {
	if !r.failed {
		return nil
	}
	if r.cause != nil {
		return &SchemaError{Field: r.field, Rule: r.rule, Err: r.cause}
	}
	return &ValidationFailure{
		Field:   r.field,
		Message: r.message,
		Key:     r.key,
		Params:  cloneParams(r.params),
	}
}

// String renders the result the way the CLI prints it.
func (r Result) String() string {
	if !r.failed {
		return "ok"
	}
	if r.field == "" {
		return r.message
	}
	return r.field + ": " + r.message
}

func (r Result) withField(name string) Result {
	r.field = name
	if r.cause != nil {
		r.message = (&SchemaError{Field: name, Rule: r.rule, Err: r.cause}).Error()
	}
	return r
}
