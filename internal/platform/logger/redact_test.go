package logger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactorPairs(t *testing.T) {
	t.Setenv("LOG_REDACTION_ENABLED", "")
	t.Setenv("LOG_HASH_SALT", "salt")
	t.Setenv("LOG_REDACT_KEYS", "company, ")
	r := redactorFromEnv()
	require.NotNil(t, r)

	owner := uuid.MustParse("6f1f7c1e-8a2b-4c55-9a0e-7b1d2c3e4f50")
	out := r.pairs([]interface{}{
		"Authorization", "Bearer x",
		"user_id", owner,
		"resume_text", "ten years of Go",
		"company", "Acme",
		"route", "/api/career/readiness",
		"meta", map[string]interface{}{"password": "p", "ok": 1},
		"dangling",
	})

	assert.Equal(t, redacted, out[1])
	hashed, ok := out[3].(string)
	require.True(t, ok)
	assert.Regexp(t, `^hash:[0-9a-f]{12}$`, hashed)
	assert.Equal(t, r.hash(owner.String()), hashed)
	assert.Equal(t, redacted, out[5])
	assert.Equal(t, redacted, out[7])
	assert.Equal(t, "/api/career/readiness", out[9])
	assert.Equal(t, map[string]interface{}{"password": redacted, "ok": 1}, out[11])
	assert.Equal(t, "dangling", out[12])
}

func TestRedactionDisabled(t *testing.T) {
	t.Setenv("LOG_REDACTION_ENABLED", "false")
	assert.Nil(t, redactorFromEnv())

	l, err := New("test")
	require.NoError(t, err)
	kv := []interface{}{"token", "abc"}
	assert.Equal(t, kv, l.clean(kv))
}

func TestJWTValuesRedacted(t *testing.T) {
	r := &redactor{}
	assert.Equal(t, redacted, r.value("note", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0.sig"))
	assert.Equal(t, "a.b.c", r.value("note", "a.b.c"))
}
