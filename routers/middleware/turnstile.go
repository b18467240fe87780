package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/siteshield/turnstile/config"
	"github.com/siteshield/turnstile/services"
	"github.com/siteshield/turnstile/types"
	u "github.com/siteshield/turnstile/utils"
	"github.com/siteshield/turnstile/utils/logger"
)

// TurnstileMiddleware is a middleware that verifies Turnstile tokens before
// forwarding the request. It builds the default verification service from
// the process configuration and panics at registration time when the
// configuration is unusable, so a missing secret key surfaces at startup
// rather than as per-request failures.
func TurnstileMiddleware() gin.HandlerFunc {
	service, err := services.NewTurnstileService()
	if err != nil {
		panic("turnstile middleware: " + err.Error())
	}
	return TurnstileMiddlewareWithVerifier(service)
}

// TurnstileMiddlewareWithVerifier is TurnstileMiddleware with an explicit
// Verifier, for custom services.
func TurnstileMiddlewareWithVerifier(verifier services.Verifier) gin.HandlerFunc {
	return TurnstileMiddlewareWithConfig(config.TurnstileConfig(), verifier)
}

// TurnstileMiddlewareWithConfig is the fully explicit form: both the gate
// configuration and the verifier are supplied by the caller, bypassing the
// cached process config.
func TurnstileMiddlewareWithConfig(conf *config.TurnstileConfiguration, verifier services.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !conf.Enabled {
			c.Next()
			return
		}

		token := extractToken(c, conf)
		if token == "" {
			// No token anywhere in the request: reject without burning a
			// siteverify round trip.
			rejectVerification(c, []string{types.ErrMissingInputResponse})
			return
		}

		outcome, err := verifier.VerifyToken(c.Request.Context(), token, c.ClientIP())
		if err != nil {
			traceID := uuid.New().String()

			if conf.FailOpen {
				logger.WithFields(logger.Fields{
					"TraceID": traceID,
					"Error":   err.Error(),
				}).Warnf("Turnstile unreachable, admitting request (fail-open)")
				c.Next()
				return
			}

			logger.WithFields(logger.Fields{
				"TraceID": traceID,
				"Error":   err.Error(),
			}).Errorf("Turnstile unreachable, rejecting request (fail-closed)")
			u.APIResponse(c, http.StatusServiceUnavailable, "error",
				"Security check temporarily unavailable", map[string]interface{}{
					"trace_id": traceID,
				})
			c.Abort()
			return
		}

		if !outcome.Success {
			rejectVerification(c, outcome.ErrorCodes)
			return
		}

		c.Next()
	}
}

// rejectVerification aborts the request with the service's error codes and a
// trace id for support correlation. The secret key is never part of the
// payload.
func rejectVerification(c *gin.Context, errorCodes []string) {
	u.APIResponse(c, http.StatusForbidden, "error",
		"Security check verification failed", map[string]interface{}{
			"error_codes": errorCodes,
			"trace_id":    uuid.New().String(),
		})
	c.Abort()
}

// extractToken pulls the Turnstile token from the request. Sources are
// checked in a fixed order and the first non-empty value wins: the
// configured header, then the POST form field, then the cookie. All three
// names are configurable because deployments differ in how the widget's
// token reaches the backend; the widget's own form convention is
// cf-turnstile-response.
func extractToken(c *gin.Context, conf *config.TurnstileConfiguration) string {
	if conf.TokenHeader != "" {
		if token := c.GetHeader(conf.TokenHeader); token != "" {
			return token
		}
	}
	if conf.TokenFormField != "" {
		if token := c.PostForm(conf.TokenFormField); token != "" {
			return token
		}
	}
	if conf.TokenCookie != "" {
		if token, err := c.Cookie(conf.TokenCookie); err == nil && token != "" {
			return token
		}
	}
	return ""
}
