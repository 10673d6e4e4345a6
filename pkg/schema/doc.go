// Package schema declares named record schemas on top of pkg/joi rule sets.
//
// A schema is an ordered list of typed fields. Schemas can be built in code
// with NewRecord or loaded from YAML and JSON documents:
//
//	schemas:
//	  user:
//	    description: Registered user
//	    fields:
//	      - name: id
//	        type: number
//	        positive: true
//	        less: 100
//	      - name: name
//	        type: string
//	        required: true
//	        pattern: "[A-Z][a-z]+"
//	        max: 31
//
// Every rule set is checked while the schema is built, so malformed patterns
// and contradictory bounds fail at load time with a *joi.SchemaError rather
// than during validation.
//
// Record.Validate binds a decoded map (for example a JSON request body) to
// the declared fields without coercion and returns the first failing
// joi.Result. Record.JSONSchema describes the same record as a JSON Schema
// document.
package schema
