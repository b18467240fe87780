package middleware

import (
	"net/http"
	"sync"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/siteshield/turnstile/config"
	u "github.com/siteshield/turnstile/utils"
)

var (
	failureLimiter gin.HandlerFunc
	initOnce       sync.Once
)

// FailureRateLimitMiddleware throttles gated requests per client IP. Place
// it in front of TurnstileMiddleware so clients replaying bad tokens are cut
// off before each attempt costs a siteverify round trip.
func FailureRateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		initOnce.Do(func() {
			conf := config.TurnstileConfig()

			store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
				Rate:  conf.FailureRateWindow,
				Limit: uint(conf.FailureRateLimit),
			})
			failureLimiter = ratelimit.RateLimiter(store, &ratelimit.Options{
				ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
					u.APIResponse(
						c,
						http.StatusTooManyRequests,
						"error",
						"Too many verification attempts from this IP address",
						map[string]interface{}{
							"retry_after": time.Until(info.ResetTime).Seconds(),
							"limit":       info.Limit,
						},
					)
					c.Abort()
				},
				KeyFunc: func(c *gin.Context) string {
					return "ip:" + c.ClientIP()
				},
			})
		})

		failureLimiter(c)
		if c.IsAborted() {
			return
		}

		c.Next()
	}
}
