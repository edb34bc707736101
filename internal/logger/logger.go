package logger

import (
	"context"
	"fmt"
	"time"

	"github.com/flexcart/flexcart/internal/config"
	"github.com/flexcart/flexcart/internal/types"
	"github.com/fluent/fluent-logger-golang/fluent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger to provide logging functionality
type Logger struct {
	*zap.SugaredLogger
	fluentdLogger *fluent.Fluent
}

// Global logger for convenience
var L *Logger

// NewLogger creates and returns a new Logger instance
func NewLogger(cfg *config.Configuration) (*Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Logging.Level == "debug" {
		zapCfg = zap.NewDevelopmentConfig()
	}

	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Disable stack traces for warnings to reduce log noise
	zapCfg.DisableStacktrace = true

	zapLogger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	var fluentdLogger *fluent.Fluent
	if cfg.Logging.FluentdEnabled && cfg.Logging.FluentdHost != "" && cfg.Logging.FluentdPort > 0 {
		fluentdLogger, err = fluent.New(fluent.Config{
			FluentHost:   cfg.Logging.FluentdHost,
			FluentPort:   cfg.Logging.FluentdPort,
			Async:        true,
			BufferLimit:  8 * 1024 * 1024,
			WriteTimeout: 3 * time.Second,
			RetryWait:    500,
			MaxRetry:     5,
		})
		if err != nil {
			zapLogger.Sugar().Warnf("Failed to initialize Fluentd logger: %v, falling back to stdout only", err)
			fluentdLogger = nil
		}
	}

	return &Logger{
		SugaredLogger: zapLogger.Sugar(),
		fluentdLogger: fluentdLogger,
	}, nil
}

// Initialize default logger and set it as global while also using Dependency Injection
// Given logger is a heavily used object it is kept as a global as well for usecases
// like scripts but everywhere else prefer the Dependency Injection approach.
func init() {
	L, _ = NewLogger(config.GetDefaultConfig())
}

func GetLogger() *Logger {
	if L == nil {
		L, _ = NewLogger(config.GetDefaultConfig())
	}
	return L
}

// WithContext returns a logger annotated with the request-scoped identifiers
// present in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	sugar := l.SugaredLogger
	if tenantID := types.GetTenantID(ctx); tenantID != "" {
		sugar = sugar.With("tenant_id", tenantID)
	}
	if requestID := types.GetRequestID(ctx); requestID != "" {
		sugar = sugar.With("request_id", requestID)
	}
	return &Logger{SugaredLogger: sugar, fluentdLogger: l.fluentdLogger}
}

// With returns a logger annotated with the given key-value pairs
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(args...), fluentdLogger: l.fluentdLogger}
}

// Helper methods to make logging more convenient. Every level both logs
// locally and forwards to fluentd when it is configured.
func (l *Logger) Debugw(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Debugw(msg, keysAndValues...)
	l.sendToFluentd("debug", msg, keysAndValues)
}

func (l *Logger) Infow(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Infow(msg, keysAndValues...)
	l.sendToFluentd("info", msg, keysAndValues)
}

func (l *Logger) Warnw(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Warnw(msg, keysAndValues...)
	l.sendToFluentd("warning", msg, keysAndValues)
}

func (l *Logger) Errorw(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Errorw(msg, keysAndValues...)
	l.sendToFluentd("error", msg, keysAndValues)
}

func (l *Logger) Fatalw(msg string, keysAndValues ...interface{}) {
	l.sendToFluentd("fatal", msg, keysAndValues)
	l.SugaredLogger.Fatalw(msg, keysAndValues...)
}

// sendToFluentd posts structured log data to fluentd. Posting is async and
// never blocks the caller.
func (l *Logger) sendToFluentd(level, msg string, keysAndValues []interface{}) {
	if l.fluentdLogger == nil {
		return
	}
	if err := l.fluentdLogger.Post("app.logs", fluentRecord(level, msg, keysAndValues)); err != nil {
		l.SugaredLogger.Warnw("failed to forward log to fluentd", "error", err)
	}
}

// fluentRecord flattens zap-style key-value pairs into a map fluentd's
// msgpack encoding can carry. Values are stringified; non-string keys and a
// dangling trailing key are dropped.
func fluentRecord(level, msg string, keysAndValues []interface{}) map[string]interface{} {
	data := map[string]interface{}{
		"level":     level,
		"message":   msg,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		data[key] = fmt.Sprint(keysAndValues[i+1])
	}
	return data
}
