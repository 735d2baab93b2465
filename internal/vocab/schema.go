package vocab

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/lessons.schema.json
var lessonsSchemaJSON []byte

const lessonsSchemaURL = "schema://tango/lessons.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Decode validates raw lesson JSON against the lesson file schema and
// decodes it. source names the origin for error messages.
func Decode(source string, raw []byte) (Lessons, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &SchemaError{Source: source, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := lessonsSchema()
	if err != nil {
		return nil, fmt.Errorf("compile lessons schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, &SchemaError{Source: source, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var lessons Lessons
	if err := json.Unmarshal(raw, &lessons); err != nil {
		return nil, &SchemaError{Source: source, Err: err}
	}
	return lessons, nil
}

// lessonsSchema compiles the embedded schema on first use.
func lessonsSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(lessonsSchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(lessonsSchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(lessonsSchemaURL)
	})
	return compiledSchema, schemaErr
}
