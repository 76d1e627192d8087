package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yungbote/careerpulse-backend/internal/platform/envutil"
)

type Logger struct {
	SugaredLogger *zap.SugaredLogger
	scrub         *redactor
}

// New builds a logger for LOG_MODE. "production" writes JSON at info, "test"
// keeps warnings and errors only, anything else is the console encoder at debug.
// LOG_LEVEL overrides the level outside of test mode.
func New(mode string) (*Logger, error) {
	cfg, lvl := configFor(strings.ToLower(strings.TrimSpace(mode)))
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: z.Sugar(), scrub: redactorFromEnv()}, nil
}

func configFor(mode string) (zap.Config, zapcore.Level) {
	switch mode {
	case "prod", "production":
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg, envLevel(zapcore.InfoLevel)
	case "test":
		return zap.NewDevelopmentConfig(), zapcore.WarnLevel
	default:
		return zap.NewDevelopmentConfig(), envLevel(zapcore.DebugLevel)
	}
}

func envLevel(def zapcore.Level) zapcore.Level {
	raw := envutil.String("LOG_LEVEL", "")
	if raw == "" {
		return def
	}
	lvl, err := zapcore.ParseLevel(raw)
	if err != nil {
		return def
	}
	return lvl
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

func (l *Logger) Debug(msg string, kv ...interface{}) { l.SugaredLogger.Debugw(msg, l.clean(kv)...) }
func (l *Logger) Info(msg string, kv ...interface{})  { l.SugaredLogger.Infow(msg, l.clean(kv)...) }
func (l *Logger) Warn(msg string, kv ...interface{})  { l.SugaredLogger.Warnw(msg, l.clean(kv)...) }
func (l *Logger) Error(msg string, kv ...interface{}) { l.SugaredLogger.Errorw(msg, l.clean(kv)...) }
func (l *Logger) Fatal(msg string, kv ...interface{}) { l.SugaredLogger.Fatalw(msg, l.clean(kv)...) }

func (l *Logger) With(kv ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(l.clean(kv)...), scrub: l.scrub}
}

func (l *Logger) clean(kv []interface{}) []interface{} {
	if l.scrub == nil {
		return kv
	}
	return l.scrub.pairs(kv)
}
