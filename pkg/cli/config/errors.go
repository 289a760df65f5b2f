package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound  = goerr.New("configuration file not found")
	ErrInvalidConfig   = goerr.New("invalid configuration")
	ErrUnknownBackend  = goerr.New("unknown provider backend")
	ErrMissingOption   = goerr.New("required option is missing")
	ErrInvalidLogLevel = goerr.New("invalid log level")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	BackendKey    = "backend"
	SectionKey    = "section"
	LabelKey      = "label"
	OptionKey     = "option"
)
