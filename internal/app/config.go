package app

import (
	"strings"
	"time"

	"github.com/yungbote/careerpulse-backend/internal/data/db"
	"github.com/yungbote/careerpulse-backend/internal/platform/envutil"
	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
	"github.com/yungbote/careerpulse-backend/internal/readiness/roles"
)

const version = "0.1.0"

type Config struct {
	Port        string
	LogMode     string
	Environment string

	DBDriver   string
	SQLitePath string

	JWTSecretKey string
	CORSOrigins  []string

	RedisAddr string

	PolicyPath      string
	DefaultLocation string

	MetricsEnabled bool
	MetricsAddr    string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:             envutil.String("PORT", "8080"),
		LogMode:          envutil.String("LOG_MODE", "development"),
		Environment:      envutil.String("APP_ENV", "development"),
		DBDriver:         strings.ToLower(envutil.String("DB_DRIVER", db.DriverPostgres)),
		SQLitePath:       envutil.String("SQLITE_PATH", "careerpulse.db"),
		JWTSecretKey:     envutil.String("JWT_SECRET_KEY", ""),
		CORSOrigins:      splitList(envutil.String("CORS_ALLOWED_ORIGINS", "")),
		RedisAddr:        envutil.String("REDIS_ADDR", ""),
		PolicyPath:       envutil.String("READINESS_POLICY_PATH", ""),
		DefaultLocation:  envutil.String("DEFAULT_JOB_LOCATION", roles.DefaultLocation),
		MetricsEnabled:   envutil.Bool("METRICS_ENABLED", false),
		MetricsAddr:      envutil.String("METRICS_ADDR", ":9090"),
		HTTPReadTimeout:  envutil.Duration("HTTP_READ_TIMEOUT", 15*time.Second),
		HTTPWriteTimeout: envutil.Duration("HTTP_WRITE_TIMEOUT", 30*time.Second),
	}
	if cfg.JWTSecretKey == "" && log != nil {
		log.Warn("JWT_SECRET_KEY is empty; every protected request will be rejected")
	}
	return cfg
}

func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
