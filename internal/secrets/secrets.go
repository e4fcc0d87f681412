// Package secrets resolves API credentials from the environment with an
// OS keyring fallback, so tokens never have to live in the config file.
package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups the agent's secrets in the OS keychain.
const KeyringService = "apply-agent"

// Accounts under KeyringService.
const (
	AccountGeminiAPIKey  = "gemini_api_key"
	AccountTelegramToken = "telegram_bot_token"
)

// Resolve returns the secret from the named environment variable first,
// then from the OS keyring. Empty string means not configured anywhere.
func Resolve(envVar, account string) string {
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return v
	}
	if account == "" {
		return ""
	}
	v, err := keyring.Get(KeyringService, account)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

// Set stores a secret in the OS keyring.
func Set(account, value string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value is empty")
	}
	return keyring.Set(KeyringService, account, value)
}

// Delete removes a secret from the OS keyring.
func Delete(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}
