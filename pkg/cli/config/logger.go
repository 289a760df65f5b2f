package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mattn/go-isatty"
	"github.com/secmon-lab/zombiequote/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Logger holds CLI flags for logging configuration
type Logger struct {
	level  string
	format string
	output string
}

// Flags returns CLI flags for logging configuration
func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Category:    "Logging",
			Sources:     cli.EnvVars("ZOMBIEQUOTE_LOG_LEVEL"),
			Destination: &l.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json)",
			Value:       string(logging.FormatConsole),
			Category:    "Logging",
			Sources:     cli.EnvVars("ZOMBIEQUOTE_LOG_FORMAT"),
			Destination: &l.format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log output (stdout, stderr, or a file path)",
			Value:       "stdout",
			Category:    "Logging",
			Sources:     cli.EnvVars("ZOMBIEQUOTE_LOG_OUTPUT"),
			Destination: &l.output,
		},
	}
}

func (l Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", l.level),
		slog.String("format", l.format),
		slog.String("output", l.output),
	)
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, goerr.Wrap(ErrInvalidLogLevel, "unsupported log level", goerr.V(OptionKey, s))
	}
}

// Configure builds the default logger. The returned function closes the log file, if any.
func (l *Logger) Configure() (func(), error) {
	level, err := parseLevel(l.level)
	if err != nil {
		return nil, err
	}

	format := logging.Format(l.format)
	switch format {
	case "":
		format = logging.FormatConsole
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return nil, goerr.Wrap(ErrInvalidConfig, "unsupported log format", goerr.V(OptionKey, l.format))
	}

	var w io.Writer
	closer := func() {}
	color := false

	switch l.output {
	case "", "stdout", "-":
		w = os.Stdout
		color = isatty.IsTerminal(os.Stdout.Fd())
	case "stderr":
		w = os.Stderr
		color = isatty.IsTerminal(os.Stderr.Fd())
	default:
		f, err := os.OpenFile(l.output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open log file", goerr.V(ConfigPathKey, l.output))
		}
		w = f
		closer = func() {
			if err := f.Close(); err != nil {
				logging.Default().Error("failed to close log file", "error", err.Error())
			}
		}
	}

	logging.SetDefault(logging.New(w, level, format, color))
	return closer, nil
}

