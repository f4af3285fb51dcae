package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"password", "hunter2", "user", "sam", "jwtToken", "abc", "dangling"})
	assert.Equal(t, []interface{}{"password", "[REDACTED]", "user", "sam", "jwtToken", "[REDACTED]", "dangling"}, out)
}

func TestNopDoesNotPanic(t *testing.T) {
	l := Nop().With("service", "test")
	l.Info("hello", "api_key", "x")
	l.Sync()
}
