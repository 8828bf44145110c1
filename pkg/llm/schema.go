package llm

import (
	"encoding/json"
	"fmt"

	"github.com/swaggest/jsonschema-go"
)

// SchemaFromStruct generates a JSON Schema for a tool's parameters from a
// Go struct using swaggest/jsonschema-go. The result is returned as a
// generic map so it can be embedded verbatim in a tool descriptor.
//
// Example:
//
//	type Params struct {
//	    Sign string `json:"sign" required:"true" description:"Radio station call sign"`
//	}
//	schema, err := llm.SchemaFromStruct(Params{})
func SchemaFromStruct(structType any) (map[string]any, error) {
	reflector := jsonschema.Reflector{}

	schema, err := reflector.Reflect(structType)
	if err != nil {
		return nil, fmt.Errorf("failed to reflect struct to JSON schema: %w", err)
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	var schemaMap map[string]any
	if err := json.Unmarshal(data, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema into map: %w", err)
	}
	return schemaMap, nil
}

// ObjectSchema builds a parameter schema by hand for tools whose
// parameters are simpler to declare than to reflect: a "type":"object"
// schema with the given properties and required list.
func ObjectSchema(properties map[string]any, required []string) map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// StringProperty describes a single string-typed parameter
func StringProperty(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description,
	}
}
