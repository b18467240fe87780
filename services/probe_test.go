package services

import (
	"errors"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/siteshield/turnstile/config"
	"github.com/stretchr/testify/assert"
)

func TestProbeEndpoint(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	t.Run("reachable endpoint", func(t *testing.T) {
		// An unauthenticated probe is answered with success=false and
		// error codes; that still proves the endpoint is reachable.
		httpmock.RegisterResponder("POST", config.DefaultSiteverifyEndpoint,
			httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
				"success":     false,
				"error-codes": []string{"invalid-input-secret"},
			}))

		err := ProbeEndpoint(2 * time.Second)
		assert.NoError(t, err)
	})

	t.Run("malformed answer", func(t *testing.T) {
		httpmock.RegisterResponder("POST", config.DefaultSiteverifyEndpoint,
			httpmock.NewStringResponder(200, "not json"))

		err := ProbeEndpoint(2 * time.Second)
		assert.Error(t, err)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		httpmock.RegisterResponder("POST", config.DefaultSiteverifyEndpoint,
			httpmock.NewErrorResponder(errors.New("connection refused")))

		err := ProbeEndpoint(2 * time.Second)
		assert.Error(t, err)
	})
}
