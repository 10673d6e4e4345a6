package schema

import (
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrymomot/joi/pkg/joi"
)

// Registry holds named records. It is read-only after construction and safe
// for concurrent use.
type Registry struct {
	records map[string]*Record
}

// NewRegistry indexes records by name. Duplicate names are rejected.
func NewRegistry(records ...*Record) (*Registry, error) {
	r := &Registry{records: make(map[string]*Record, len(records))}
	for _, rec := range records {
		if rec == nil {
			continue
		}
		if _, dup := r.records[rec.name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSchema, rec.name)
		}
		r.records[rec.name] = rec
	}
	return r, nil
}

// Get returns the record registered under name.
func (r *Registry) Get(name string) (*Record, bool) {
	rec, ok := r.records[name]
	return rec, ok
}

// Names returns registered record names in lexical order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.records))
}

func (r *Registry) Len() int {
	return len(r.records)
}

// Validate looks up the record by name and validates values against it.
func (r *Registry) Validate(name string, values map[string]any) (joi.Result, error) {
	rec, ok := r.Get(name)
	if !ok {
		return joi.Result{}, fmt.Errorf("%w: %s", ErrSchemaNotFound, name)
	}
	return rec.Validate(values), nil
}
