package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"name": "Test User",
		"email": "test@example.com",
		"spreadsheet_id": "1AbCdEfGh",
		"max_daily_applications": 25,
		"business_hours_only": true,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "Test User", cfg.Name)
	assert.Equal(t, "test@example.com", cfg.Email)
	assert.Equal(t, "1AbCdEfGh", cfg.SpreadsheetID)
	assert.Equal(t, 25, cfg.MaxDailyApplications)
	assert.True(t, cfg.BusinessHoursOnly)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_BadEmail(t *testing.T) {
	cfg := &Config{
		Email: "not-an-email",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Email")
}

func TestValidate_BadWebsite(t *testing.T) {
	cfg := &Config{
		Website: "not a url",
	}

	err := cfg.Validate()
	assert.Error(t, err)
}

func TestValidate_NegativeValues(t *testing.T) {
	cfg := &Config{
		MaxDailyApplications: -1,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "max_daily_applications")
}

func TestValidate_MissingResume(t *testing.T) {
	cfg := &Config{
		ResumePath: "/nonexistent/resume.pdf",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "resume file not found")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		Name:                 "Test User",
		Email:                "test@example.com",
		LinkedIn:             "https://linkedin.com/in/test",
		Website:              "https://test.dev",
		MaxDailyApplications: 25,
		IntervalMinutes:      30,
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Name:                 "Default Name",
		Email:                "default@example.com",
		SpreadsheetID:        "default-sheet",
		MaxDailyApplications: 25,
		IntervalMinutes:      30,
	}

	partial := Config{
		Name:          "Custom Name",
		SpreadsheetID: "custom-sheet",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "Custom Name", merged.Name)
	assert.Equal(t, "custom-sheet", merged.SpreadsheetID)

	// Default values should fill in empty fields
	assert.Equal(t, "default@example.com", merged.Email)
	assert.Equal(t, 25, merged.MaxDailyApplications)
	assert.Equal(t, 30, merged.IntervalMinutes)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		Name:          "Test",
		SpreadsheetID: "test-sheet",
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "Test", merged.Name)
	assert.Equal(t, "test-sheet", merged.SpreadsheetID)
}
