package logx

import "fmt"

// defaultLogger is the package-level logger instance
var defaultLogger *Logger

func init() {
	defaultLogger = NewLoggerFromEnv()
}

// SetDefaultLogger sets the default logger
func SetDefaultLogger(logger *Logger) {
	defaultLogger = logger
}

// GetDefaultLogger returns the default logger
func GetDefaultLogger() *Logger {
	return defaultLogger
}

// SetLevel sets the log level of the default logger
func SetLevel(level Level) {
	defaultLogger.SetLevel(level)
}

// Trace logs a trace level message
func Trace(msg string) { defaultLogger.log(LevelTrace, msg, nil, nil) }

// Debug logs a debug level message
func Debug(msg string) { defaultLogger.log(LevelDebug, msg, nil, nil) }

// Info logs an info level message
func Info(msg string) { defaultLogger.log(LevelInfo, msg, nil, nil) }

// Warn logs a warning level message
func Warn(msg string) { defaultLogger.log(LevelWarn, msg, nil, nil) }

// Error logs an error level message
func Error(msg string) { defaultLogger.log(LevelError, msg, nil, nil) }

// Fatal logs a fatal message and exits
func Fatal(msg string) { defaultLogger.log(LevelFatal, msg, nil, nil) }

// Debugf logs a formatted debug message
func Debugf(format string, args ...interface{}) {
	defaultLogger.log(LevelDebug, fmt.Sprintf(format, args...), nil, nil)
}

// Infof logs a formatted info message
func Infof(format string, args ...interface{}) {
	defaultLogger.log(LevelInfo, fmt.Sprintf(format, args...), nil, nil)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	defaultLogger.log(LevelWarn, fmt.Sprintf(format, args...), nil, nil)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	defaultLogger.log(LevelError, fmt.Sprintf(format, args...), nil, nil)
}

// Fatalf logs a formatted fatal message and exits
func Fatalf(format string, args ...interface{}) {
	defaultLogger.log(LevelFatal, fmt.Sprintf(format, args...), nil, nil)
}

// WithFields logs a message with structured fields at the given level
func WithFields(level Level, msg string, fields Fields) {
	defaultLogger.log(level, msg, fields, nil)
}

// ErrorWith logs an error message with the causing error and fields
func ErrorWith(msg string, err error, fields Fields) {
	defaultLogger.log(LevelError, msg, fields, err)
}
