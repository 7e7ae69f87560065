package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

//go:generate go run ../tools/schema-generator -o ../file-preview.schema.json

// GenerateSchema generates the JSON Schema describing config.toml.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		// Every key is optional; missing keys take their defaults.
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "toml",
	}

	schema := r.Reflect(&File{})
	schema.Title = "file-preview configuration"
	schema.Description = "Settings for the file-preview watch daemon and status bar widget."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
