package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/siteshield/turnstile/config"
	"github.com/siteshield/turnstile/routers/middleware"
	"github.com/siteshield/turnstile/services"
	u "github.com/siteshield/turnstile/utils"
	"github.com/siteshield/turnstile/utils/logger"
)

func main() {
	conf := config.ServerConfig()
	turnstileConf := config.TurnstileConfig()

	if conf.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := services.ProbeEndpoint(5 * time.Second); err != nil {
		logger.Warnf("Turnstile endpoint probe failed: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// The widget config is public; only the secret key stays server-side.
	router.GET("/widget", func(c *gin.Context) {
		u.APIResponse(c, http.StatusOK, "success", "OK", map[string]interface{}{
			"site_key": turnstileConf.SiteKey,
		})
	})

	protected := router.Group("")
	protected.Use(middleware.FailureRateLimitMiddleware())
	protected.Use(middleware.TurnstileMiddleware())
	protected.POST("/submit", func(c *gin.Context) {
		u.APIResponse(c, http.StatusOK, "success", "Submission accepted", nil)
	})

	addr := fmt.Sprintf("%s:%s", conf.Host, conf.Port)
	logger.Infof("Demo server listening on %s", addr)
	if err := router.Run(addr); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}
