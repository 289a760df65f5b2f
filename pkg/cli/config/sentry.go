package config

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zombiequote/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Sentry holds CLI flags for error reporting
type Sentry struct {
	DSN         string `masq:"secret"`
	Environment string
}

// Flags returns CLI flags for Sentry configuration
func (s *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN. Error reporting is disabled when empty",
			Category:    "Sentry",
			Sources:     cli.EnvVars("ZOMBIEQUOTE_SENTRY_DSN"),
			Destination: &s.DSN,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Category:    "Sentry",
			Sources:     cli.EnvVars("ZOMBIEQUOTE_SENTRY_ENV"),
			Destination: &s.Environment,
		},
	}
}

// Configure initializes the Sentry client. The returned function flushes pending events.
func (s *Sentry) Configure(release string) (func(), error) {
	if s.DSN == "" {
		logging.Default().Debug("Sentry DSN not configured, error reporting disabled")
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         s.DSN,
		Environment: s.Environment,
		Release:     release,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry")
	}

	logging.Default().Info("Sentry error reporting enabled", slog.Any("sentry", s))
	return func() {
		sentry.Flush(2 * time.Second)
	}, nil
}
