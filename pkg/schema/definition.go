package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/joi/pkg/joi"
)

// Format identifies the encoding of a schema document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Document is the on-disk layout of a schema file. Schemas are keyed by
// name; fields keep their declaration order.
type Document struct {
	Schemas map[string]RecordDef `yaml:"schemas" json:"schemas"`
}

// RecordDef declares one record schema.
type RecordDef struct {
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Fields      []FieldDef `yaml:"fields" json:"fields"`
}

// FieldDef declares one field. Min and Max bound the value of a number field
// and the length of a string field; the remaining rules apply to a single
// type only.
type FieldDef struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	Min *int `yaml:"min,omitempty" json:"min,omitempty"`
	Max *int `yaml:"max,omitempty" json:"max,omitempty"`

	// number rules
	Less     *int  `yaml:"less,omitempty" json:"less,omitempty"`
	Greater  *int  `yaml:"greater,omitempty" json:"greater,omitempty"`
	Allow    []int `yaml:"allow,omitempty" json:"allow,omitempty"`
	Disallow []int `yaml:"disallow,omitempty" json:"disallow,omitempty"`
	Negative bool  `yaml:"negative,omitempty" json:"negative,omitempty"`
	Positive bool  `yaml:"positive,omitempty" json:"positive,omitempty"`

	// string rules
	Required  bool   `yaml:"required,omitempty" json:"required,omitempty"`
	Length    *int   `yaml:"length,omitempty" json:"length,omitempty"`
	Pattern   string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Alpha     bool   `yaml:"alpha,omitempty" json:"alpha,omitempty"`
	Num       bool   `yaml:"num,omitempty" json:"num,omitempty"`
	Alphanum  bool   `yaml:"alphanum,omitempty" json:"alphanum,omitempty"`
	IP        bool   `yaml:"ip,omitempty" json:"ip,omitempty"`
	Lowercase bool   `yaml:"lowercase,omitempty" json:"lowercase,omitempty"`
	Uppercase bool   `yaml:"uppercase,omitempty" json:"uppercase,omitempty"`
	Strict    bool   `yaml:"strict,omitempty" json:"strict,omitempty"`
}

// Build converts the declaration into a Field.
func (d FieldDef) Build() (Field, error) {
	if d.Name == "" {
		return Field{}, fmt.Errorf("%w: field", ErrEmptyName)
	}

	var f Field
	switch strings.ToLower(d.Type) {
	case "number", "int", "integer":
		if misplaced := d.stringRules(); len(misplaced) > 0 {
			return Field{}, fmt.Errorf("%w: %s: %s on number", ErrMisplacedRule, d.Name, strings.Join(misplaced, ", "))
		}
		f = NumberField(d.Name, d.numberRule())
	case "string", "text":
		if misplaced := d.numberRules(); len(misplaced) > 0 {
			return Field{}, fmt.Errorf("%w: %s: %s on string", ErrMisplacedRule, d.Name, strings.Join(misplaced, ", "))
		}
		f = StringField(d.Name, d.stringRule())
	default:
		return Field{}, fmt.Errorf("%w: %s: %q", ErrUnknownType, d.Name, d.Type)
	}

	return f.Describe(d.Description), nil
}

func (d FieldDef) numberRule() joi.Number {
	rule := joi.NewNumber()
	if d.Min != nil {
		rule = rule.Minimum(*d.Min)
	}
	if d.Max != nil {
		rule = rule.Maximum(*d.Max)
	}
	if d.Disallow != nil {
		rule = rule.Disallow(d.Disallow...)
	}
	if d.Allow != nil {
		rule = rule.Allow(d.Allow...)
	}
	if d.Less != nil {
		rule = rule.Less(*d.Less)
	}
	if d.Greater != nil {
		rule = rule.Greater(*d.Greater)
	}
	if d.Negative {
		rule = rule.Negative()
	}
	if d.Positive {
		rule = rule.Positive()
	}
	return rule
}

func (d FieldDef) stringRule() joi.String {
	rule := joi.NewString()
	if d.Required {
		rule = rule.Required()
	}
	if d.Min != nil {
		rule = rule.Minimum(*d.Min)
	}
	if d.Max != nil {
		rule = rule.Maximum(*d.Max)
	}
	if d.Length != nil {
		rule = rule.Length(*d.Length)
	}
	if d.Pattern != "" {
		rule = rule.Pattern(d.Pattern)
	}
	if d.Alpha {
		rule = rule.Alpha()
	}
	if d.Num {
		rule = rule.Num()
	}
	if d.Alphanum {
		rule = rule.Alphanum()
	}
	if d.IP {
		rule = rule.IP()
	}
	if d.Lowercase {
		rule = rule.Lowercase()
	}
	if d.Uppercase {
		rule = rule.Uppercase()
	}
	if d.Strict {
		rule = rule.Strict()
	}
	return rule
}

// numberRules lists number-only rules present in the declaration.
func (d FieldDef) numberRules() []string {
	var set []string
	if d.Less != nil {
		set = append(set, "less")
	}
	if d.Greater != nil {
		set = append(set, "greater")
	}
	if d.Allow != nil {
		set = append(set, "allow")
	}
	if d.Disallow != nil {
		set = append(set, "disallow")
	}
	if d.Negative {
		set = append(set, "negative")
	}
	if d.Positive {
		set = append(set, "positive")
	}
	return set
}

// stringRules lists string-only rules present in the declaration.
func (d FieldDef) stringRules() []string {
	var set []string
	if d.Required {
		set = append(set, "required")
	}
	if d.Length != nil {
		set = append(set, "length")
	}
	if d.Pattern != "" {
		set = append(set, "pattern")
	}
	for _, rule := range []struct {
		name string
		on   bool
	}{
		{"alpha", d.Alpha},
		{"num", d.Num},
		{"alphanum", d.Alphanum},
		{"ip", d.IP},
		{"lowercase", d.Lowercase},
		{"uppercase", d.Uppercase},
		{"strict", d.Strict},
	} {
		if rule.on {
			set = append(set, rule.name)
		}
	}
	return set
}

// Decode reads a schema document in the given format. Unknown keys are
// rejected so that typos in rule names do not silently disable a rule.
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Join(ErrInvalidDocument, err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Join(ErrInvalidDocument, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &doc, nil
}

// Parse decodes a schema document and builds a registry from it.
func Parse(data []byte, format Format) (*Registry, error) {
	doc, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, err
	}
	return doc.Registry()
}

// LoadFile reads a YAML or JSON schema document from disk.
func LoadFile(path string) (*Registry, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}
	return Parse(data, format)
}

// Registry builds every declared record.
func (doc *Document) Registry() (*Registry, error) {
	records := make([]*Record, 0, len(doc.Schemas))
	for _, name := range slices.Sorted(maps.Keys(doc.Schemas)) {
		def := doc.Schemas[name]
		fields := make([]Field, 0, len(def.Fields))
		for _, fd := range def.Fields {
			f, err := fd.Build()
			if err != nil {
				return nil, fmt.Errorf("schema %s: %w", name, err)
			}
			fields = append(fields, f)
		}
		rec, err := NewRecord(name, fields...)
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", name, err)
		}
		rec.description = def.Description
		records = append(records, rec)
	}
	return NewRegistry(records...)
}
