package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// fileSchema constrains the YAML configuration document.
const fileSchema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"attribute": {
			"type": "string",
			"pattern": "^[^\\s/>=\"']+$"
		},
		"splitter": {
			"type": "string",
			"minLength": 1
		},
		"namespace": {
			"type": "string",
			"pattern": "^[^.\\s]+$"
		},
		"eventType": {
			"type": "string",
			"pattern": "^[^.\\s]+$"
		},
		"logLevel": {
			"type": "string",
			"pattern": "(?i)^(debug|info|warn|warning|error|none|off)$"
		}
	}
}`

var compiledSchema = mustCompileSchema(fileSchema)

func mustCompileSchema(src string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
	if err != nil {
		panic(fmt.Sprintf("config: parse schema: %v", err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("config.json", doc); err != nil {
		panic(fmt.Sprintf("config: add schema: %v", err))
	}
	s, err := c.Compile("config.json")
	if err != nil {
		panic(fmt.Sprintf("config: compile schema: %v", err))
	}
	return s
}

// ValidationError wraps a JSON Schema validation error.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// validate checks a decoded YAML document against the schema. The document
// is round-tripped through JSON so the validator sees JSON value types.
func validate(raw any) error {
	if raw == nil {
		return nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("config: encode for validation: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return fmt.Errorf("config: decode for validation: %w", err)
	}
	if err := compiledSchema.Validate(inst); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}
