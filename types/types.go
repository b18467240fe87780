package types

// Response is the generic API response envelope
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// VerificationOutcome represents the parsed result of a Turnstile
// siteverify call. It is produced once per request and never cached,
// since Turnstile tokens are single-use.
type VerificationOutcome struct {
	Success     bool     `json:"success"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
	ChallengeTS string   `json:"challenge_ts,omitempty"`
	Hostname    string   `json:"hostname,omitempty"`
}

// Known siteverify error codes.
const (
	ErrMissingInputSecret   = "missing-input-secret"
	ErrInvalidInputSecret   = "invalid-input-secret"
	ErrMissingInputResponse = "missing-input-response"
	ErrInvalidInputResponse = "invalid-input-response"
	ErrBadRequest           = "bad-request"
	ErrTimeoutOrDuplicate   = "timeout-or-duplicate"
	ErrInternalError        = "internal-error"
)
