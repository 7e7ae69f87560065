// Package schema checks config documents against the JSON Schema generated
// from the config file format.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/grovetools/file-preview/config"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const resourceName = "file-preview.schema.json"

// Validator validates config documents against the config schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the config schema.
func NewValidator() (*Validator, error) {
	data, err := config.GenerateSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to generate config schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceName, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to compile config schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// Validate returns one message per violation, sorted; an empty slice means
// the document is valid. The document is normalised through JSON first so
// TOML and YAML decoder types (int64, nested maps) validate the same way.
func (v *Validator) Validate(doc interface{}) ([]string, error) {
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to JSON for validation: %w", err)
	}

	var dataToValidate interface{}
	if err := json.Unmarshal(jsonData, &dataToValidate); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON for validation: %w", err)
	}

	err = v.schema.Validate(dataToValidate)
	if err == nil {
		return nil, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var messages []string
	collectErrors(validationErr, &messages)
	if len(messages) == 0 {
		messages = append(messages, validationErr.Message)
	}
	sort.Strings(messages)
	return messages, nil
}

// collectErrors walks the error tree and keeps the leaf causes.
func collectErrors(err *jsonschema.ValidationError, messages *[]string) {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		*messages = append(*messages, fmt.Sprintf("%s: %s", location, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectErrors(cause, messages)
	}
}
