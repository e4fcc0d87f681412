package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_EnvWins(t *testing.T) {
	t.Setenv("APPLY_AGENT_TEST_SECRET", "  from-env  ")

	got := Resolve("APPLY_AGENT_TEST_SECRET", AccountGeminiAPIKey)
	assert.Equal(t, "from-env", got)
}

func TestResolve_UnsetEverywhere(t *testing.T) {
	t.Setenv("APPLY_AGENT_TEST_SECRET", "")

	// No env value and no keyring account to consult.
	got := Resolve("APPLY_AGENT_TEST_SECRET", "")
	assert.Empty(t, got)
}

func TestSet_RejectsEmptyInput(t *testing.T) {
	assert.Error(t, Set("", "value"))
	assert.Error(t, Set(AccountTelegramToken, "   "))
	assert.Error(t, Delete(""))
}
