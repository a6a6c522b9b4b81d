package logger

// Logger defines the logging interface shared by the REST API, the CLI and
// the assistant pipeline.
type Logger interface {
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})
}
