package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLogLevel(logrus.DebugLevel)

	t.Run("Infof", func(t *testing.T) {
		buf.Reset()
		Infof("verification %s", "passed")
		assert.Contains(t, buf.String(), "INFO")
		assert.Contains(t, buf.String(), "verification passed")
	})

	t.Run("WithFields", func(t *testing.T) {
		buf.Reset()
		WithFields(Fields{"ErrorCodes": []string{"bad-request"}}).Warnf("verification failed")
		assert.Contains(t, buf.String(), "WARN")
		assert.Contains(t, buf.String(), "verification failed")
		assert.Contains(t, buf.String(), "ErrorCodes")
	})

	t.Run("Debugf honors level", func(t *testing.T) {
		buf.Reset()
		SetLogLevel(logrus.InfoLevel)
		Debugf("hidden")
		assert.Empty(t, buf.String())
	})
}
