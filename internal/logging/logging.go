package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a structured logger at the configured level.
// Unknown levels fall back to info rather than failing startup.
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		log.WithField("configured", level).Warn("unknown log level, defaulting to info")
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return log
}
