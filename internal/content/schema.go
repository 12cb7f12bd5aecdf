package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// frontMatterSchema is the strict-mode contract for post metadata: the
// display fields the listing views depend on must be present and typed.
var frontMatterSchema = map[string]any{
	"type":     "object",
	"required": []string{"title", "description", "date"},
	"properties": map[string]any{
		"title":       map[string]any{"type": "string", "minLength": 1},
		"description": map[string]any{"type": "string", "minLength": 1},
		"date":        map[string]any{"type": "string"},
		"author":      map[string]any{"type": "string"},
		"draft":       map[string]any{"type": "boolean"},
		"tags": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
}

// SchemaValidator checks parsed front matter against the post metadata
// schema. It is only consulted when the store runs with strict front
// matter enabled.
type SchemaValidator struct {
	schema *jsonschema.Schema
}

// NewSchemaValidator compiles the front matter schema once for reuse.
func NewSchemaValidator() (*SchemaValidator, error) {
	schema, err := compileSchema(frontMatterSchema)
	if err != nil {
		return nil, fmt.Errorf("content: compile front matter schema: %w", err)
	}
	return &SchemaValidator{schema: schema}, nil
}

// Validate reports schema violations in the raw front matter map. The map
// is round-tripped through JSON first so non-JSON values (parsed dates)
// validate as their wire representation.
func (v *SchemaValidator) Validate(raw map[string]any) error {
	if v == nil || v.schema == nil {
		return nil
	}

	instance, err := normalizeInstance(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFrontMatterInvalid, err)
	}

	if err := v.schema.Validate(instance); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("%w: %s", ErrFrontMatterInvalid, flattenIssues(validationErr))
		}
		return fmt.Errorf("%w: %v", ErrFrontMatterInvalid, err)
	}
	return nil
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("frontmatter.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("frontmatter.json")
}

func normalizeInstance(raw map[string]any) (any, error) {
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var instance any
	if err := json.Unmarshal(encoded, &instance); err != nil {
		return nil, err
	}
	return instance, nil
}

func flattenIssues(err *jsonschema.ValidationError) string {
	if err == nil {
		return ""
	}

	var issues []string
	var walk func(node *jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			location := strings.TrimSpace(node.InstanceLocation)
			if location == "" {
				location = "/"
			}
			issues = append(issues, fmt.Sprintf("%s: %s", location, strings.TrimSpace(node.Message)))
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return strings.Join(issues, "; ")
}
