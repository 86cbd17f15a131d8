package bootstrap

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort       string  `mapstructure:"SERVER_PORT"`
	RedisUrl         string  `mapstructure:"REDIS_URL"`
	MongoUri         string  `mapstructure:"MONGO_URI"`
	MongoDatabase    string  `mapstructure:"MONGO_DATABASE"`
	IsLocalCors      bool    `mapstructure:"LOCAL_CORS"`
	BoardServiceAddr string  `mapstructure:"BOARD_SERVICE_ADDR"`
	BoardServicePort string  `mapstructure:"BOARD_SERVICE_PORT"`
	DefaultKomi      float64 `mapstructure:"DEFAULT_KOMI"`
}

var keys = []string{
	"SERVER_PORT", "REDIS_URL", "MONGO_URI", "MONGO_DATABASE", "LOCAL_CORS",
	"BOARD_SERVICE_ADDR", "BOARD_SERVICE_PORT", "DEFAULT_KOMI",
}

// Setup reads cfgPath (a .env file) and lets environment variables override it.
// A missing file is not an error.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgPath)
	v.SetConfigType("env")

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("MONGO_DATABASE", "igo")
	v.SetDefault("BOARD_SERVICE_ADDR", "localhost:8082")
	v.SetDefault("BOARD_SERVICE_PORT", "8082")
	v.SetDefault("DEFAULT_KOMI", 6.5)

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
