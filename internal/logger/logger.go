package logger

import (
	"os"

	kitlog "github.com/go-kit/log"
)

// Config identifies the service in every log line
type Config struct {
	Service string
	Version string
}

// New creates a new structured logger using go-kit/log
func New(config Config) kitlog.Logger {
	// Logfmt output, human readable and easy to parse by log aggregators
	logger := kitlog.NewLogfmtLogger(os.Stderr)
	// Timestamp in UTC plus the calling site
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	logger = kitlog.With(logger, "caller", kitlog.DefaultCaller)
	// Service identity
	logger = kitlog.With(logger, "service", config.Service, "version", config.Version)
	return logger
}
