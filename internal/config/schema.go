package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

const schemaDraft = "http://json-schema.org/draft-07/schema#"

// Schema generates the JSON Schema of the configuration file
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	s := r.Reflect(&Config{})
	s.Version = schemaDraft
	s.ID = "https://github.com/NikitaCOEUR/devconsole/config.schema.json"
	s.Title = "devconsole configuration"

	if aliases, ok := s.Properties.Get("aliases"); ok {
		aliases.PropertyNames = &jsonschema.Schema{
			Pattern:     `^[^\s"]+$`,
			Description: "Alias names cannot contain whitespace or quotes",
		}
		aliases.AdditionalProperties = &jsonschema.Schema{Type: "string", MinLength: uint64Ptr(1)}
	}
	return s
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

// SchemaJSON returns the indented JSON Schema of the configuration file
func SchemaJSON() (string, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}
	return string(data), nil
}

// ValidateWithSchema validates config content against the JSON Schema.
// The format is chosen from the path extension.
func ValidateWithSchema(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	var data interface{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(content, &data); err != nil {
			result.addError("syntax", fmt.Sprintf("Invalid YAML syntax: %v", err))
			return result, nil
		}
	case ".json":
		if err := json.Unmarshal(content, &data); err != nil {
			result.addError("syntax", fmt.Sprintf("Invalid JSON syntax: %v", err))
			return result, nil
		}
	case ".toml":
		m, err := toml.Parser().Unmarshal(content)
		if err != nil {
			result.addError("syntax", fmt.Sprintf("Invalid TOML syntax: %v", err))
			return result, nil
		}
		data = m
	default:
		return nil, fmt.Errorf("unsupported file format: %s", ext)
	}

	// an empty document is a valid configuration
	if data == nil {
		data = map[string]interface{}{}
	}

	schema, err := SchemaJSON()
	if err != nil {
		return nil, err
	}

	validation, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewGoLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	for _, e := range validation.Errors() {
		result.addError(e.Field(), e.Description())
	}
	return result, nil
}
