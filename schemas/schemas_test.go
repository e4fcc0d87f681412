package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/apply-agent/internal/schemas"
)

func TestAgentConfigSchema_ValidJSON(t *testing.T) {
	data, err := os.ReadFile(filepath.Join(".", "agent_config.schema.json"))
	require.NoError(t, err, "should be able to read schema file")

	var v interface{}
	err = json.Unmarshal(data, &v)
	assert.NoError(t, err, "schema file should be valid JSON")
}

func TestAgentConfigSchema_ValidJSONSchema(t *testing.T) {
	data, err := os.ReadFile(filepath.Join(".", "agent_config.schema.json"))
	require.NoError(t, err)

	var schemaObj map[string]interface{}
	err = json.Unmarshal(data, &schemaObj)
	require.NoError(t, err)

	// Check for required JSON Schema fields
	_, hasType := schemaObj["type"]
	_, hasSchema := schemaObj["$schema"]
	_, hasProps := schemaObj["properties"]

	assert.True(t, hasType && hasSchema && hasProps,
		"schema should declare type, $schema and properties")
}

func TestAgentConfigSchema_AcceptsFullConfig(t *testing.T) {
	configJSON := `{
		"name": "Jane Doe",
		"email": "jane@example.com",
		"phone": "+1 555 0100",
		"linkedin": "https://linkedin.com/in/janedoe",
		"website": "https://jane.dev",
		"resume_path": "data/resume.pdf",
		"credentials_file": "credentials.json",
		"spreadsheet_id": "1AbCdEfGh",
		"max_daily_applications": 25,
		"business_hours_only": true,
		"interval_minutes": 30,
		"headless": false,
		"verbose": true,
		"telegram_bot_token": "123:abc",
		"telegram_chat_id": "456"
	}`

	schemaData, err := os.ReadFile("agent_config.schema.json")
	require.NoError(t, err)

	err = schemas.ValidateJSONString(string(schemaData), configJSON)
	assert.NoError(t, err)
}

func TestAgentConfigSchema_RejectsBadConfig(t *testing.T) {
	schemaData, err := os.ReadFile("agent_config.schema.json")
	require.NoError(t, err)

	tests := []struct {
		name string
		json string
	}{
		{"negative daily cap", `{"max_daily_applications": -1}`},
		{"unknown field", `{"max_applications_per_day": 10}`},
		{"wrong type", `{"business_hours_only": "yes"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schemas.ValidateJSONString(string(schemaData), tt.json)
			require.Error(t, err)

			_, ok := err.(*schemas.ValidationError)
			assert.True(t, ok, "should be a ValidationError, got %T", err)
		})
	}
}
