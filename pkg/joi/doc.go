// Package joi validates scalar values against declarative, immutable rule
// sets and reports the first violated rule in a human readable form.
//
// Two rule sets are provided. Number constrains integers with bounds, strict
// bounds, whitelists, blacklists and sign requirements. String constrains
// text with presence, length, a regular expression, character classes, an
// IPv4 format and letter case. Both are built with chained calls, each of
// which returns an updated copy, so a configured rule set can be shared
// freely between goroutines.
//
// # Evaluation
//
// Every rule set evaluates its constraints in a fixed order and stops at the
// first violation. The outcome is a Result value: Failed reports the
// verdict and Message explains it. A passing Result always has an empty
// message.
//
//	id := joi.NewNumber().Positive().Less(100)
//	name := joi.NewString().Pattern("[A-Z][a-z]+").Maximum(31).Required()
//
//	if res := name.Validate("leonardo"); res.Failed() {
//	    fmt.Println(res.Message()) // pattern validation failed
//	}
//
// # Records
//
// Validate runs a sequence of fields in declaration order and returns the
// first failure, tagged with the field name. Each field declares its kind
// through its constructor (Int or Str) and is dispatched on that kind.
//
//	res := joi.Validate(
//	    joi.Int("id", 10, id),
//	    joi.Str("name", "Leonardo", name),
//	)
//
// # Required gating
//
// For compatibility, String reports minimum length, exact length, pattern and
// IPv4 failures only when the rule set is also Required. Maximum length,
// character class and case rules always apply. Call Strict to make every
// constraint independent of Required: an empty optional value then passes
// as absent, while a non-empty one must satisfy all constraints.
//
// # Length
//
// A value ends at its first NUL byte, so text held in a zero-padded buffer
// gets the same verdict from every rule as the bare text. Length rules count
// bytes up to that point or up to the compared bound, whichever comes first.
//
// # Errors
//
// Result.Err converts a failure into an error. A *ValidationFailure means the
// data is invalid; a *SchemaError means the rule set itself is malformed, for
// example because its pattern does not compile. Both match the sentinels
// ErrValidationFailed and ErrInvalidSchema through errors.Is.
package joi
