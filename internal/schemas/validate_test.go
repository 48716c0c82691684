package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["title"],
	"properties": {
		"title": {"type": "string"},
		"company": {"type": "string"}
	}
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON_ValidDocument(t *testing.T) {
	schemaPath := writeTemp(t, "schema.json", recordSchema)
	jsonPath := writeTemp(t, "doc.json", `{"title": "Developer", "company": "Acme"}`)

	err := ValidateJSON(schemaPath, jsonPath)
	assert.NoError(t, err)
}

func TestValidateJSON_MissingRequiredField(t *testing.T) {
	schemaPath := writeTemp(t, "schema.json", recordSchema)
	jsonPath := writeTemp(t, "doc.json", `{"company": "Acme"}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_WrongType(t *testing.T) {
	schemaPath := writeTemp(t, "schema.json", recordSchema)
	jsonPath := writeTemp(t, "doc.json", `{"title": 42}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	jsonPath := writeTemp(t, "doc.json", `{"title": "Developer"}`)

	err := ValidateJSON("testdata/nonexistent_schema.json", jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_NonExistentJSON(t *testing.T) {
	schemaPath := writeTemp(t, "schema.json", recordSchema)

	err := ValidateJSON(schemaPath, "testdata/nonexistent_json.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	schemaPath := writeTemp(t, "schema.json", recordSchema)
	jsonPath := writeTemp(t, "malformed.json", "{ invalid json }")

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)
}

func TestValidateJSONString_Valid(t *testing.T) {
	err := ValidateJSONString(recordSchema, `{"title": "Developer"}`)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	err := ValidateJSONString(recordSchema, `{"company": "Acme"}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "title", Message: "is required"},
			{Field: "salary", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "title")
	assert.Contains(t, errorMsg, "salary")
}

func TestValidateJSONString_NestedFieldValidation(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["record"],
		"properties": {
			"record": {
				"type": "object",
				"required": ["title"],
				"properties": {
					"title": {"type": "string"}
				}
			}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"record": {}}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Greater(t, len(validationErr.Errors), 0)

	found := false
	for _, fieldErr := range validationErr.Errors {
		if fieldErr.Field != "" {
			found = true
			break
		}
	}
	assert.True(t, found, "should include field path in error")
}
