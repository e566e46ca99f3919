// Package schema provides JSON Schema generation for the engine's two
// document formats: the top-level engine configuration (internal/engineconfig)
// and a per-organization declarative document (internal/model.Organization).
package schema

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/invopop/jsonschema"

	"github.com/otterdog-go/otterdog/internal/engineconfig"
	"github.com/otterdog-go/otterdog/internal/model"
)

// SchemaOutput represents a generated schema with its metadata.
type SchemaOutput struct {
	// Name is the short identifier for this schema (e.g., "organization", "engine-config")
	Name string
	// Filename is the output filename (e.g., "organization.schema.json")
	Filename string
	// Content is the generated JSON schema bytes
	Content []byte
}

// SchemaType identifies the type of schema to generate.
type SchemaType string

const (
	// SchemaOrganization generates schema for a per-organization declarative document.
	SchemaOrganization SchemaType = "organization"
	// SchemaEngineConfig generates schema for the top-level engine configuration file.
	SchemaEngineConfig SchemaType = "engine-config"
)

// commentPaths lists all source directories containing types used in schemas.
// These paths are loaded to extract Go doc comments as JSON Schema descriptions.
var commentPaths = []string{
	"./internal/model",
	"./internal/value",
	"./internal/engineconfig",
}

// GenerateSchemaForType generates JSON Schema for the specified schema type.
func GenerateSchemaForType(modulePath string, schemaType SchemaType) (*SchemaOutput, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
	}

	for _, path := range commentPaths {
		if err := reflector.AddGoComments(modulePath, path); err != nil {
			return nil, errors.Wrapf(err, "loading Go comments from %s", path)
		}
	}

	var (
		schemaDoc *jsonschema.Schema
		output    SchemaOutput
	)

	switch schemaType {
	case SchemaOrganization:
		schemaDoc = reflector.Reflect(&model.Organization{})
		schemaDoc.ID = "https://raw.githubusercontent.com/otterdog-go/otterdog/main/schemas/organization.schema.json"
		schemaDoc.Title = "Organization Configuration"
		schemaDoc.Description = "Declarative configuration for a single GitHub organization, the document internal/evaluator's jsonnet evaluation produces."

		output.Name = "organization"
		output.Filename = "organization.schema.json"

	case SchemaEngineConfig:
		schemaDoc = reflector.Reflect(&engineconfig.Config{})
		schemaDoc.ID = "https://raw.githubusercontent.com/otterdog-go/otterdog/main/schemas/engine-config.schema.json"
		schemaDoc.Title = "Engine Configuration"
		schemaDoc.Description = "Top-level configuration listing every organization this engine manages and how to reach it."

		output.Name = "engine-config"
		output.Filename = "engine-config.schema.json"

	default:
		return nil, errors.Newf("unknown schema type: %s", schemaType)
	}

	schemaDoc.Version = "https://json-schema.org/draft/2020-12/schema"

	content, err := finalizeSchema(schemaDoc)
	if err != nil {
		return nil, err
	}

	output.Content = content

	return &output, nil
}

// GenerateAllSchemas generates every schema this engine defines.
func GenerateAllSchemas(modulePath string) ([]*SchemaOutput, error) {
	schemaTypes := []SchemaType{SchemaOrganization, SchemaEngineConfig}
	outputs := make([]*SchemaOutput, 0, len(schemaTypes))

	for _, schemaType := range schemaTypes {
		output, err := GenerateSchemaForType(modulePath, schemaType)
		if err != nil {
			return nil, errors.Wrapf(err, "generating %s schema", schemaType)
		}

		outputs = append(outputs, output)
	}

	return outputs, nil
}

// finalizeSchema converts a schema to JSON and applies post-processing.
func finalizeSchema(schemaDoc *jsonschema.Schema) ([]byte, error) {
	schemaBytes, err := json.Marshal(schemaDoc)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling schema to bytes")
	}

	var schemaMap map[string]any
	if err = json.Unmarshal(schemaBytes, &schemaMap); err != nil {
		return nil, errors.Wrap(err, "unmarshaling schema to map")
	}

	normalizeDescriptions(schemaMap)

	output, err := json.MarshalIndent(schemaMap, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling final schema")
	}

	output = append(output, '\n')

	return output, nil
}

// normalizeDescriptions recursively replaces newlines in description fields with spaces.
func normalizeDescriptions(v any) {
	switch val := v.(type) {
	case map[string]any:
		for key, value := range val {
			if key == "description" {
				if desc, ok := value.(string); ok {
					val[key] = strings.ReplaceAll(desc, "\n", " ")
				}
			} else {
				normalizeDescriptions(value)
			}
		}
	case []any:
		for _, item := range val {
			normalizeDescriptions(item)
		}
	}
}
