package pardll

//
// Data model
//

// Logger is the logger used throughout this package. CLI commands
// adapt a concrete logging library to this interface; tests typically
// use [NullLogger].
type Logger interface {
	// Debugf formats and emits a debug message.
	Debugf(format string, v ...any)

	// Debug emits a debug message.
	Debug(message string)

	// Infof formats and emits an informational message.
	Infof(format string, v ...any)

	// Info emits an informational message.
	Info(message string)

	// Warnf formats and emits a warning message.
	Warnf(format string, v ...any)

	// Warn emits a warning message.
	Warn(message string)
}

// NullLogger is a [Logger] that discards everything. Useful in tests
// and for callers that do not care about diagnostic output.
type NullLogger struct{}

var _ Logger = &NullLogger{}

// Debug implements Logger.
func (nl *NullLogger) Debug(message string) {}

// Debugf implements Logger.
func (nl *NullLogger) Debugf(format string, v ...any) {}

// Info implements Logger.
func (nl *NullLogger) Info(message string) {}

// Infof implements Logger.
func (nl *NullLogger) Infof(format string, v ...any) {}

// Warn implements Logger.
func (nl *NullLogger) Warn(message string) {}

// Warnf implements Logger.
func (nl *NullLogger) Warnf(format string, v ...any) {}
