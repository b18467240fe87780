package config

import (
	"os"

	"github.com/spf13/viper"
)

// SetupConfig loads configuration from an env file and the process environment.
// Environment variables always take precedence over file values. A missing env
// file is not an error since embedding applications may provide everything
// through the environment.
func SetupConfig() error {
	viper.AddConfigPath("../../..")
	viper.AddConfigPath("../..")
	viper.AddConfigPath("..")
	viper.AddConfigPath(".")

	envFilePath := os.Getenv("ENV_FILE_PATH")
	if envFilePath == "" {
		envFilePath = ".env"
	}

	viper.SetConfigName(envFilePath)
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	return nil
}
