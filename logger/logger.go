package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// EnvLogLevel selects the minimum level: debug, info, warn or error.
const EnvLogLevel = "LOG_LEVEL"

// Logger wraps logrus logger
type Logger struct {
	*logrus.Logger
	component string
}

// New creates a JSON logger writing to stderr, so stdout stays free for
// command output.
func New(component string) *Logger {
	return NewWithOutput(component, os.Stderr)
}

func NewWithOutput(component string, out io.Writer) *Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	log.SetOutput(out)
	log.SetLevel(levelFromEnv())

	return &Logger{Logger: log, component: component}
}

func levelFromEnv() logrus.Level {
	switch strings.ToLower(os.Getenv(EnvLogLevel)) {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Entry returns an entry tagged with the component name.
func (l *Logger) Entry() *logrus.Entry {
	return l.WithField("component", l.component)
}

// WithMarket tags an entry with the cast hash a market is keyed by.
func (l *Logger) WithMarket(key string) *logrus.Entry {
	return l.Entry().WithField("market", key)
}

// WithTier tags an entry with the tier a trade is priced at.
func (l *Logger) WithTier(activeTier int, classified bool) *logrus.Entry {
	return l.Entry().WithFields(logrus.Fields{
		"tier":       activeTier,
		"classified": classified,
	})
}
