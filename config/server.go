package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// ServerConfiguration defines the host process settings used by the demo
// server and the logger.
type ServerConfiguration struct {
	Debug       bool
	Host        string
	Port        string
	Environment string
	SentryDSN   string
}

// ServerConfig returns the server configurations
func ServerConfig() *ServerConfiguration {
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("ENVIRONMENT", "local")

	return &ServerConfiguration{
		Debug:       viper.GetBool("DEBUG"),
		Host:        viper.GetString("SERVER_HOST"),
		Port:        viper.GetString("SERVER_PORT"),
		Environment: viper.GetString("ENVIRONMENT"),
		SentryDSN:   viper.GetString("SENTRY_DSN"),
	}
}

func init() {
	if err := SetupConfig(); err != nil {
		panic(fmt.Sprintf("config SetupConfig() error: %s", err))
	}
}
