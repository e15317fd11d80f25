package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"user_id", 7, "password", "hunter2", "JWT_SECRET", "abc", "dangling"})
	assert.Equal(t, []interface{}{"user_id", 7, "password", "[REDACTED]", "JWT_SECRET", "[REDACTED]", "dangling"}, out)
}

func TestDefaultLoggerIsUsableBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		L().Info("before init", "token", "x")
		L().With("component", "test").Debug("still fine")
	})
}
