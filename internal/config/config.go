package config

import (
	"github.com/joho/godotenv"
	"github.com/plankt0n/streamplay-api/pkg/log"
	"github.com/plankt0n/streamplay-api/pkg/sqldb"
	"github.com/vrischmann/envconfig"
)

// AdminConfig holds the single static administrator account.
type AdminConfig struct {
	Username string
	Password string
}

type Config struct {
	Logger        *log.Config
	DB            *sqldb.Config
	Admin         *AdminConfig
	ServerAddress string `envconfig:"default=:3000"`
}

func NewConfig() (*Config, error) {
	c := &Config{
		Logger: &log.Config{},
		DB:     &sqldb.Config{},
		Admin:  &AdminConfig{},
	}

	_ = godotenv.Load()

	if err := envconfig.Init(c); err != nil {
		return nil, err
	}

	c.DB.SetDefault()
	c.Logger.SetDefault()

	return c, nil
}
