package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTurnstileConfigDefaults(t *testing.T) {
	conf := TurnstileConfig()

	assert.Equal(t, DefaultSiteverifyEndpoint, conf.Endpoint)
	assert.Equal(t, 5*time.Second, conf.Timeout)
	assert.True(t, conf.Enabled)

	// Fail-closed is the documented default: an unreachable verification
	// service must not silently admit traffic.
	assert.False(t, conf.FailOpen)

	assert.Equal(t, "X-Turnstile-Token", conf.TokenHeader)
	assert.Equal(t, "cf-turnstile-response", conf.TokenFormField)
	assert.Equal(t, "cf-turnstile-response", conf.TokenCookie)
}

func TestTurnstileConfigIsCached(t *testing.T) {
	first := TurnstileConfig()
	second := TurnstileConfig()
	assert.Same(t, first, second)
}
