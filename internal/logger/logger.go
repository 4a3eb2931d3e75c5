package logger

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "shopping-list-api"

var (
	Logger *zap.Logger
)

type requestIDKey struct{}

func init() {
	Logger = zap.NewNop()
}

// Init builds the process logger. An empty or unknown level falls back to
// info in production and debug elsewhere.
func Init(environment, level string) error {
	var config zap.Config

	if environment == "production" {
		config = zap.NewProductionConfig()
		config.Sampling = nil
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.Level = zap.NewAtomicLevelAt(parseLevel(environment, level))

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.CallerKey = "caller"
	config.EncoderConfig.StacktraceKey = "stacktrace"
	config.InitialFields = map[string]interface{}{"service": serviceName}

	var err error
	Logger, err = config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(Logger)

	return nil
}

func parseLevel(environment, level string) zapcore.Level {
	if parsed, err := zapcore.ParseLevel(strings.TrimSpace(level)); err == nil && level != "" {
		return parsed
	}
	if environment == "production" {
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

func WithRequestID(requestID string) *zap.Logger {
	if requestID == "" {
		return Logger
	}
	return Logger.With(zap.String("request_id", requestID))
}

// ContextWithRequestID stores the request id for loggers derived with Ctx.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Ctx returns the process logger tagged with the request id carried by ctx.
func Ctx(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return Logger
	}
	requestID, _ := ctx.Value(requestIDKey{}).(string)
	return WithRequestID(requestID)
}

func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

// Named returns a child logger for a component, e.g. gorm or mqtt.
func Named(name string) *zap.Logger {
	return Logger.Named(name)
}

func Fatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
}
