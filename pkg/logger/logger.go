package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is usable as soon as the package loads; InitLogger applies the
// production configuration on top.
var Log = logrus.New()

// InitLogger configures the shared structured logger. Output goes to stdout
// as JSON; LOG_LEVEL overrides the default info level.
func InitLogger() {
	Log.Out = os.Stdout
	Log.SetFormatter(&logrus.JSONFormatter{})

	level := logrus.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := logrus.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	Log.SetLevel(level)
}
