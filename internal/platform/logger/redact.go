package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/yungbote/careerpulse-backend/internal/platform/envutil"
)

const redacted = "[REDACTED]"

// Resume and profile bodies are free text written by the user.
var defaultSecretKeys = []string{
	"token", "authorization", "password", "secret", "cookie", "api_key", "apikey",
	"email", "phone", "resume_text", "profile_json",
}

var defaultHashedKeys = []string{"user_id", "owner_id"}

// redactor rewrites log fields: secret-ish keys are blanked and identity keys
// are replaced with a salted short hash so lines stay joinable per user.
type redactor struct {
	secret []string
	hashed []string
	salt   string
}

// redactorFromEnv returns nil when LOG_REDACTION_ENABLED is false.
func redactorFromEnv() *redactor {
	if !envutil.Bool("LOG_REDACTION_ENABLED", true) {
		return nil
	}
	r := &redactor{
		secret: append([]string(nil), defaultSecretKeys...),
		hashed: defaultHashedKeys,
		salt:   envutil.String("LOG_HASH_SALT", ""),
	}
	for _, k := range strings.Split(envutil.String("LOG_REDACT_KEYS", ""), ",") {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			r.secret = append(r.secret, k)
		}
	}
	return r
}

func (r *redactor) pairs(kv []interface{}) []interface{} {
	if len(kv) == 0 {
		return kv
	}
	out := make([]interface{}, len(kv))
	copy(out, kv)
	for i := 0; i+1 < len(out); i += 2 {
		key := stringify(out[i])
		out[i] = key
		out[i+1] = r.value(strings.ToLower(key), out[i+1])
	}
	return out
}

func (r *redactor) value(key string, v interface{}) interface{} {
	switch {
	case containsAny(key, r.secret):
		return redacted
	case containsAny(key, r.hashed):
		return r.hash(v)
	}
	switch t := v.(type) {
	case string:
		if isJWT(t) {
			return redacted
		}
	case map[string]interface{}:
		nested := make(map[string]interface{}, len(t))
		for k, inner := range t {
			nested[k] = r.value(strings.ToLower(k), inner)
		}
		return nested
	}
	return v
}

func (r *redactor) hash(v interface{}) string {
	raw := stringify(v)
	if raw == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(r.salt + raw))
	return "hash:" + hex.EncodeToString(sum[:])[:12]
}

func containsAny(key string, frags []string) bool {
	for _, f := range frags {
		if strings.Contains(key, f) {
			return true
		}
	}
	return false
}

func isJWT(s string) bool {
	if strings.Count(s, ".") != 2 {
		return false
	}
	head, rest, _ := strings.Cut(s, ".")
	payload, _, _ := strings.Cut(rest, ".")
	return len(head) > 10 && len(payload) > 10
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case []byte:
		return string(t)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
