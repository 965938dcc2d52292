package config

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"sigs.k8s.io/yaml"
)

//go:embed schemas/deploy-config.v1.schema.json
var schemaFS embed.FS

const schemaPath = "schemas/deploy-config.v1.schema.json"

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config failed schema validation: %s", strings.Join(e.Problems, "; "))
}

// Is makes errors.Is(err, ErrInvalidConfig) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Schema returns the embedded JSON schema.
func Schema() ([]byte, error) {
	return schemaFS.ReadFile(schemaPath)
}

// ValidateSchema validates YAML configuration data against the JSON schema.
func ValidateSchema(data []byte) error {
	schemaBytes, err := Schema()
	if err != nil {
		return fmt.Errorf("failed to load JSON schema: %w", err)
	}

	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(jsonData),
	)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return &ValidationError{Problems: problems}
}
