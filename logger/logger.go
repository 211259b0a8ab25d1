package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	logger *zap.SugaredLogger
	once   sync.Once
)

// Init initializes the global structured logger. Production config when
// ENV=production, development (human-readable) otherwise.
func Init() {
	once.Do(func() {
		var base *zap.Logger
		var err error
		if os.Getenv("ENV") == "production" {
			base, err = zap.NewProduction()
		} else {
			base, err = zap.NewDevelopment()
		}
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
		logger = base.Sugar()
	})
}

// L returns the global logger instance
func L() *zap.SugaredLogger {
	if logger == nil {
		Init()
	}
	return logger
}

// Sync flushes buffered log entries. Call before exit.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

// Info is a shorthand for L().Infow
func Info(msg string, keysAndValues ...any) {
	L().Infow(msg, keysAndValues...)
}

// Error is a shorthand for L().Errorw
func Error(msg string, keysAndValues ...any) {
	L().Errorw(msg, keysAndValues...)
}

// Debug is a shorthand for L().Debugw
func Debug(msg string, keysAndValues ...any) {
	L().Debugw(msg, keysAndValues...)
}

// Warn is a shorthand for L().Warnw
func Warn(msg string, keysAndValues ...any) {
	L().Warnw(msg, keysAndValues...)
}

// Fatal is a shorthand for L().Fatalw
func Fatal(msg string, keysAndValues ...any) {
	L().Fatalw(msg, keysAndValues...)
}
