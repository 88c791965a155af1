// Package datafile decodes the static reference documents (curriculum and
// question bank). Documents may be JSON or YAML; both are checked against a
// JSON Schema before being decoded into Go types.
package datafile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFor picks the format from a file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// SchemaError lists every violation found while validating a document.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema validation failed: %s", strings.Join(e.Violations, "; "))
}

// Schema is a compiled JSON Schema.
type Schema struct {
	schema *gojsonschema.Schema
}

// MustCompile compiles a schema literal. It panics on an invalid schema, so
// it is only meant for package-level schema variables.
func MustCompile(src string) *Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("datafile: invalid schema: %v", err))
	}
	return &Schema{schema: s}
}

// Validate checks a JSON document against the schema.
func (s *Schema) Validate(doc []byte) error {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("validate document: %w", err)
	}
	if result.Valid() {
		return nil
	}
	violations := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return &SchemaError{Violations: violations}
}

// Decode converts data to JSON if needed, validates it against schema (when
// non-nil) and unmarshals it into v.
func Decode(data []byte, format Format, schema *Schema, v any) error {
	doc, err := toJSON(data, format)
	if err != nil {
		return err
	}
	if schema != nil {
		if err := schema.Validate(doc); err != nil {
			return err
		}
	}
	if err := json.Unmarshal(doc, v); err != nil {
		return fmt.Errorf("decode %s document: %w", format, err)
	}
	return nil
}

// ReadFile reads and decodes the document at path, choosing the format from
// its extension.
func ReadFile(path string, schema *Schema, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return Decode(data, FormatFor(path), schema, v)
}

func toJSON(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		if !json.Valid(data) {
			return nil, fmt.Errorf("document is not valid JSON")
		}
		return data, nil
	case FormatYAML:
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		doc, err := json.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("convert yaml to json: %w", err)
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}
}
