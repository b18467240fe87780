package config

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

// DefaultSiteverifyEndpoint is Cloudflare's standard Turnstile verification endpoint.
const DefaultSiteverifyEndpoint = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// TurnstileConfiguration defines the Turnstile verification settings.
//
// SecretKey is the server-side credential for the siteverify API. It is
// required whenever Enabled is true and must never appear in logs or
// responses. FailOpen controls the transport-error policy: when the
// verification service is unreachable the gate rejects by default
// (fail-closed) and only forwards when FailOpen is explicitly set.
type TurnstileConfiguration struct {
	SecretKey string
	SiteKey   string
	Endpoint  string
	Timeout   time.Duration
	Enabled   bool
	FailOpen  bool

	// Token extraction sources, checked in order: header, POST form
	// field, cookie. First non-empty value wins.
	TokenHeader    string
	TokenFormField string
	TokenCookie    string

	// Failure throttle: at most FailureRateLimit gated requests per
	// client IP within FailureRateWindow.
	FailureRateLimit  int
	FailureRateWindow time.Duration
}

var (
	turnstileDefaultsOnce sync.Once
	turnstileConfigOnce   sync.Once
	turnstileConfig       *TurnstileConfiguration
)

// initTurnstileDefaults sets the default values for the Turnstile configuration.
// This is called once during initialization to avoid concurrent map writes.
func initTurnstileDefaults() {
	turnstileDefaultsOnce.Do(func() {
		viper.SetDefault("TURNSTILE_ENABLED", true)
		viper.SetDefault("TURNSTILE_SITE_KEY", "")
		viper.SetDefault("TURNSTILE_SECRET_KEY", "")
		viper.SetDefault("TURNSTILE_ENDPOINT", DefaultSiteverifyEndpoint)
		viper.SetDefault("TURNSTILE_TIMEOUT", 5) // seconds
		viper.SetDefault("TURNSTILE_FAIL_OPEN", false)
		viper.SetDefault("TURNSTILE_TOKEN_HEADER", "X-Turnstile-Token")
		viper.SetDefault("TURNSTILE_TOKEN_FORM_FIELD", "cf-turnstile-response")
		viper.SetDefault("TURNSTILE_TOKEN_COOKIE", "cf-turnstile-response")
		viper.SetDefault("TURNSTILE_FAILURE_RATE_LIMIT", 10)
		viper.SetDefault("TURNSTILE_FAILURE_RATE_WINDOW", 60) // seconds
	})
}

// TurnstileConfig returns the Turnstile verification configurations.
// The config is initialized once and cached, making it safe to share
// by reference across concurrently handled requests.
func TurnstileConfig() *TurnstileConfiguration {
	initTurnstileDefaults()

	turnstileConfigOnce.Do(func() {
		turnstileConfig = &TurnstileConfiguration{
			SecretKey:      viper.GetString("TURNSTILE_SECRET_KEY"),
			SiteKey:        viper.GetString("TURNSTILE_SITE_KEY"),
			Endpoint:       viper.GetString("TURNSTILE_ENDPOINT"),
			Timeout:        time.Duration(viper.GetInt("TURNSTILE_TIMEOUT")) * time.Second,
			Enabled:        viper.GetBool("TURNSTILE_ENABLED"),
			FailOpen:       viper.GetBool("TURNSTILE_FAIL_OPEN"),
			TokenHeader:    viper.GetString("TURNSTILE_TOKEN_HEADER"),
			TokenFormField: viper.GetString("TURNSTILE_TOKEN_FORM_FIELD"),
			TokenCookie:    viper.GetString("TURNSTILE_TOKEN_COOKIE"),

			FailureRateLimit:  viper.GetInt("TURNSTILE_FAILURE_RATE_LIMIT"),
			FailureRateWindow: time.Duration(viper.GetInt("TURNSTILE_FAILURE_RATE_WINDOW")) * time.Second,
		}
	})
	return turnstileConfig
}

func init() {
	initTurnstileDefaults()
}
