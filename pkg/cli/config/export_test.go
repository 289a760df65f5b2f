package config

import "time"

// NewProviderForTest creates a Provider config for testing purposes
func NewProviderForTest(backend string, latency time.Duration, weightsPath, sqlitePath string) *Provider {
	return &Provider{
		backend:     backend,
		latency:     latency,
		weightsPath: weightsPath,
		sqlitePath:  sqlitePath,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}
