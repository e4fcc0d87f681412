// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/apply-agent/internal/schemas"
)

// configSchemaPath locates the JSON Schema the config file is checked
// against before decoding.
const configSchemaPath = "schemas/agent_config.schema.json"

// Config represents the agent configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Applicant profile
	Name     string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty" validate:"omitempty,url"`
	Website  string `json:"website,omitempty" validate:"omitempty,url"`

	// Paths
	ResumePath        string `json:"resume_path,omitempty"`         // PDF uploaded into application forms
	CredentialsFile   string `json:"credentials_file,omitempty"`    // Google service account JSON
	ScreenshotDir     string `json:"screenshot_dir,omitempty"`      // Where outcome screenshots land
	BrowserProfileDir string `json:"browser_profile_dir,omitempty"` // Persistent browser session dir

	// Tracker sheet
	SpreadsheetID string `json:"spreadsheet_id,omitempty"`

	// Limits
	MaxDailyApplications int  `json:"max_daily_applications,omitempty"`
	BusinessHoursOnly    bool `json:"business_hours_only,omitempty"`
	IntervalMinutes      int  `json:"interval_minutes,omitempty"`

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Headless    bool   `json:"headless,omitempty"`
	Verbose     bool   `json:"verbose,omitempty"`

	// Telegram
	TelegramBotToken string `json:"telegram_bot_token,omitempty"`
	TelegramChatID   string `json:"telegram_chat_id,omitempty"`
}

// LoadConfig loads configuration from a JSON file, checking it against
// the shipped JSON Schema first when the schema can be located.
// Returns an error if the file cannot be read, fails the schema, or
// cannot be parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Schema check is skipped when the binary runs outside the repo and
	// the schema file is not present.
	if schemaPath := schemas.ResolveSchemaPath(configSchemaPath); schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, path); err != nil {
			return nil, fmt.Errorf("config file failed schema validation: %w", err)
		}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Validate numeric ranges
	if c.MaxDailyApplications < 0 {
		return fmt.Errorf("config error: 'max_daily_applications' must be non-negative")
	}
	if c.IntervalMinutes < 0 {
		return fmt.Errorf("config error: 'interval_minutes' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.ResumePath != "" {
		if _, err := os.Stat(c.ResumePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.ResumePath)
		}
	}
	if c.CredentialsFile != "" {
		if _, err := os.Stat(c.CredentialsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: credentials file not found: %s", c.CredentialsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Name == "" {
		result.Name = defaults.Name
	}
	if result.Email == "" {
		result.Email = defaults.Email
	}
	if result.Phone == "" {
		result.Phone = defaults.Phone
	}
	if result.LinkedIn == "" {
		result.LinkedIn = defaults.LinkedIn
	}
	if result.Website == "" {
		result.Website = defaults.Website
	}
	if result.ResumePath == "" {
		result.ResumePath = defaults.ResumePath
	}
	if result.CredentialsFile == "" {
		result.CredentialsFile = defaults.CredentialsFile
	}
	if result.ScreenshotDir == "" {
		result.ScreenshotDir = defaults.ScreenshotDir
	}
	if result.BrowserProfileDir == "" {
		result.BrowserProfileDir = defaults.BrowserProfileDir
	}
	if result.SpreadsheetID == "" {
		result.SpreadsheetID = defaults.SpreadsheetID
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.TelegramBotToken == "" {
		result.TelegramBotToken = defaults.TelegramBotToken
	}
	if result.TelegramChatID == "" {
		result.TelegramChatID = defaults.TelegramChatID
	}

	// Int fields: use default if zero
	if result.MaxDailyApplications == 0 {
		result.MaxDailyApplications = defaults.MaxDailyApplications
	}
	if result.IntervalMinutes == 0 {
		result.IntervalMinutes = defaults.IntervalMinutes
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
