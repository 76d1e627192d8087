package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "SQLITE_PATH", "REDIS_ADDR", "READINESS_POLICY_PATH", "DEFAULT_JOB_LOCATION", "METRICS_ADDR", "HTTP_READ_TIMEOUT", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig(logger.Nop())
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "careerpulse.db", cfg.SQLitePath)
	assert.Equal(t, "India", cfg.DefaultLocation)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, 15*time.Second, cfg.HTTPReadTimeout)
	assert.Nil(t, cfg.CORSOrigins)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("HTTP_WRITE_TIMEOUT", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	cfg := LoadConfig(logger.Nop())
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 5*time.Second, cfg.HTTPWriteTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadPolicyDefault(t *testing.T) {
	pol, err := loadPolicy(logger.Nop(), "")
	assert.NoError(t, err)
	assert.NotEmpty(t, pol.Roles)

	_, err = loadPolicy(logger.Nop(), "/nonexistent/policy.yaml")
	assert.Error(t, err)
}
