package services

import (
	"fmt"
	"net/url"
	"time"

	fastshot "github.com/opus-domini/fast-shot"
	"github.com/siteshield/turnstile/config"
	u "github.com/siteshield/turnstile/utils"
)

// ProbeEndpoint checks that the configured siteverify endpoint is reachable
// and answering well-formed JSON. It sends a deliberately unauthenticated
// verification; any parseable siteverify answer (normally success=false with
// error codes) proves connectivity. Intended for startup and readiness
// checks, never for admitting traffic.
func ProbeEndpoint(timeout time.Duration) error {
	conf := config.TurnstileConfig()

	endpoint := conf.Endpoint
	if endpoint == "" {
		endpoint = config.DefaultSiteverifyEndpoint
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid turnstile endpoint %q: %w", endpoint, err)
	}
	base := parsed.Scheme + "://" + parsed.Host

	payload := map[string]string{
		"secret":   "probe",
		"response": "probe",
	}

	res, err := fastshot.NewClient(base).
		Config().SetTimeout(timeout).
		Build().POST(parsed.Path).
		Body().AsJSON(payload).
		Send()
	if err != nil {
		return fmt.Errorf("siteverify endpoint unreachable: %w", err)
	}

	data, err := u.ParseJSONResponse(res.RawResponse)
	if err != nil {
		return fmt.Errorf("siteverify endpoint returned malformed body: %w", err)
	}

	if _, ok := data["success"]; !ok {
		return fmt.Errorf("siteverify endpoint answer missing success field")
	}

	return nil
}
