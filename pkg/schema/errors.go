package schema

import "errors"

var (
	ErrUnknownFormat   = errors.New("unknown schema document format")
	ErrInvalidDocument = errors.New("invalid schema document")
	ErrReadFile        = errors.New("failed to read schema file")
	ErrEmptyName       = errors.New("name must not be empty")
	ErrDuplicateSchema = errors.New("duplicate schema name")
	ErrDuplicateField  = errors.New("duplicate field name")
	ErrUnknownType     = errors.New("unknown field type")
	ErrMisplacedRule   = errors.New("rule does not apply to field type")
	ErrSchemaNotFound  = errors.New("schema not found")
	ErrNoFields        = errors.New("schema declares no fields")
)
