package logger

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/siteshield/turnstile/config"
)

var logger = logrus.New()

var sentryEnabled bool

func init() {
	logger.Level = logrus.InfoLevel
	logger.Formatter = &formatter{}
	cfg := config.ServerConfig()

	if cfg.Environment == "production" || cfg.Environment == "staging" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			AttachStacktrace: true,
		})
		if err != nil {
			logger.Errorf("Sentry initialization failed: %v", err)
		} else {
			sentryEnabled = true
		}
	}

	if cfg.Debug {
		logger.Level = logrus.DebugLevel
	}
}

// SetOutput redirects log output, primarily for tests.
func SetOutput(w io.Writer) {
	logger.Out = w
}

// SetLogLevel sets the log level for the logger.
func SetLogLevel(level logrus.Level) {
	logger.Level = level
}

// Fields type, used to pass to `WithFields`.
type Fields logrus.Fields

// WithFields returns an entry with structured context attached
func WithFields(fields Fields) *logrus.Entry {
	return logger.WithFields(logrus.Fields(fields))
}

// Debugf logs a message at level Debug
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Infof logs a message at level Info
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Warnf logs a message at level Warn
func Warnf(format string, args ...interface{}) {
	if sentryEnabled {
		sentry.CaptureMessage(fmt.Sprintf(format, args...))
	}
	logger.Warnf(format, args...)
}

// Errorf logs a message at level Error
func Errorf(format string, args ...interface{}) {
	if sentryEnabled {
		sentry.CaptureMessage(fmt.Sprintf(format, args...))
	}
	logger.Errorf(format, args...)
}

// Fatalf logs a message at level Fatal then exits
func Fatalf(format string, args ...interface{}) {
	if sentryEnabled {
		sentry.CaptureMessage(fmt.Sprintf(format, args...))
		sentry.Flush(2 * time.Second)
	}
	logger.Fatalf(format, args...)
}

// formatter implements logrus.Formatter interface
type formatter struct {
	prefix string
}

// Format building log message
func (f *formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var sb bytes.Buffer
	sb.WriteString(strings.ToUpper(entry.Level.String()))
	sb.WriteString(" ")
	sb.WriteString(entry.Time.Format(time.RFC3339))
	sb.WriteString(" ")
	sb.WriteString(f.prefix)
	sb.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		sb.WriteString(" [")
		for key, value := range entry.Data {
			sb.WriteString(fmt.Sprintf("%s=%v ", key, value))
		}
		sb.WriteString("]")
	}
	sb.WriteString("\n")

	return sb.Bytes(), nil
}
