package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging builds the process logger. Log lines go to stderr so the
// report text on stdout stays clean. Unrecognized level names fall back to
// info.
func SetupLogging(level string) *logrus.Logger {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}

	logger := logrus.Logger{
		Formatter: &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		},
		Out:   os.Stderr,
		Level: parsed,
	}

	return &logger
}
