package joi

// Kind is the declared scalar kind of a record field.
type Kind uint8

const (
	KindNumber Kind = iota + 1
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Field pairs a value with the rule set it must satisfy. The kind is fixed by
// the constructor and decides which evaluator runs.
type Field struct {
	name    string
	kind    Kind
	num     int
	str     string
	numRule Number
	strRule String
}

// Int declares a numeric field.
func Int(name string, value int, rule Number) Field {
	return Field{name: name, kind: KindNumber, num: value, numRule: rule}
}

// Str declares a textual field.
func Str(name string, value string, rule String) Field {
	return Field{name: name, kind: KindString, str: value, strRule: rule}
}

// Key declares a field of either kind. A value whose kind does not match the
// rule set yields a field that fails with ErrUnknownKind.
func Key[V int | string, R Number | String](name string, value V, rule R) Field {
	switch v := any(value).(type) {
	case int:
		if r, ok := any(rule).(Number); ok {
			return Int(name, v, r)
		}
	case string:
		if r, ok := any(rule).(String); ok {
			return Str(name, v, r)
		}
	}
	return Field{name: name}
}

func (f Field) Name() string { return f.name }
func (f Field) Kind() Kind   { return f.kind }

// Validate evaluates the field on its own. The result carries the field name.
func (f Field) Validate() Result {
	var res Result
	switch f.kind {
	case KindNumber:
		res = f.numRule.Validate(f.num)
	case KindString:
		res = f.strRule.Validate(f.str)
	default:
		res = schemaFailure("kind", ErrUnknownKind)
	}
	if !res.Failed() {
		return res
	}
	return res.withField(f.name)
}

// Validate evaluates fields in order and returns the first failure. Fields
// after a failing one are not evaluated. When every field passes the result
// is OK.
//
//	res := joi.Validate(
//	    joi.Int("id", model.ID, schema.ID),
//	    joi.Str("name", model.Name, schema.Name),
//	)
//	if res.Failed() {
//	    fmt.Println(res)
//	}
func Validate(fields ...Field) Result {
	for _, f := range fields {
		if res := f.Validate(); res.Failed() {
			return res
		}
	}
	return OK()
}
