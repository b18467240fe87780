package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/siteshield/turnstile/config"
	"github.com/siteshield/turnstile/types"
	"github.com/siteshield/turnstile/utils"
	"github.com/siteshield/turnstile/utils/logger"
)

// Verifier validates a Turnstile token with Cloudflare. Implementations
// must return a non-nil *types.VerificationOutcome when the remote service
// answered, and a *TransportError when it could not be reached, so callers
// can tell "token rejected" apart from "service unreachable".
type Verifier interface {
	VerifyToken(ctx context.Context, token, remoteIP string) (*types.VerificationOutcome, error)
}

// TransportError reports a failure to complete the siteverify round trip:
// connection errors, timeouts, unexpected status codes and malformed
// response bodies. It is never returned for a token the service rejected.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("turnstile siteverify %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// TurnstileService handles Cloudflare Turnstile token validation
type TurnstileService struct {
	conf   *config.TurnstileConfiguration
	client *http.Client
}

// NewTurnstileService creates a TurnstileService from the process
// configuration. It fails fast when verification is enabled but no
// secret key is configured.
func NewTurnstileService() (*TurnstileService, error) {
	return NewTurnstileServiceWithConfig(config.TurnstileConfig())
}

// NewTurnstileServiceWithConfig creates a TurnstileService with an explicit
// configuration, bypassing the cached process config.
func NewTurnstileServiceWithConfig(conf *config.TurnstileConfiguration) (*TurnstileService, error) {
	if conf.Enabled && conf.SecretKey == "" {
		return nil, fmt.Errorf("turnstile secret key not configured")
	}
	endpoint := conf.Endpoint
	if endpoint == "" {
		endpoint = config.DefaultSiteverifyEndpoint
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid turnstile endpoint %q: %w", endpoint, err)
	}

	return &TurnstileService{
		conf:   conf,
		client: utils.GetHTTPClient(),
	}, nil
}

// VerifyToken validates a Turnstile token with Cloudflare.
//
// The outbound call is bounded by the configured timeout and additionally
// by ctx, so an aborted host request cancels the in-flight verification.
// Exactly one network call is made per invocation and no retries are
// performed; Turnstile tokens are single-use and a blind retry would
// surface as timeout-or-duplicate.
func (s *TurnstileService) VerifyToken(ctx context.Context, token, remoteIP string) (*types.VerificationOutcome, error) {
	// Skip verification if Turnstile is disabled
	if !s.conf.Enabled {
		logger.Infof("Turnstile verification skipped (disabled)")
		return &types.VerificationOutcome{Success: true}, nil
	}

	// An absent token is a verification failure, not a transport problem.
	// Short-circuit without a network call.
	if token == "" {
		return &types.VerificationOutcome{
			Success:    false,
			ErrorCodes: []string{types.ErrMissingInputResponse},
		}, nil
	}

	data := url.Values{}
	data.Set("secret", s.conf.SecretKey)
	data.Set("response", token)
	if remoteIP != "" {
		data.Set("remoteip", remoteIP)
	}

	timeout := s.conf.Timeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	endpoint := s.conf.Endpoint
	if endpoint == "" {
		endpoint = config.DefaultSiteverifyEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Errorf("Failed to reach Turnstile siteverify: %v", err)
		return nil, &TransportError{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Errorf("Failed to read Turnstile response: %v", err)
		return nil, &TransportError{Op: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		logger.Errorf("Unexpected Turnstile siteverify status: %d", resp.StatusCode)
		return nil, &TransportError{Op: "response status", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var outcome types.VerificationOutcome
	if err := json.Unmarshal(body, &outcome); err != nil {
		logger.Errorf("Failed to parse Turnstile response: %v", err)
		return nil, &TransportError{Op: "decode response", Err: err}
	}

	if !outcome.Success {
		logger.WithFields(logger.Fields{
			"ErrorCodes": outcome.ErrorCodes,
			"Hostname":   outcome.Hostname,
		}).Debugf("Turnstile verification failed")
	}

	return &outcome, nil
}
