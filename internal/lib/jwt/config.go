package jwt

import (
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/vrischmann/envconfig"
)

const DefaultValidityHours = 24

type Config struct {
	Secret        string
	ValidityHours int `envconfig:"default=24"`
}

// NewConfig reads JWT_SECRET and JWT_VALIDITY_HOURS. A missing secret is an error.
func NewConfig() (*Config, error) {
	c := &Config{}

	_ = godotenv.Load()

	if err := envconfig.InitWithPrefix(c, "JWT"); err != nil {
		return nil, errors.Wrap(err, "init config")
	}

	return c.SetDefault(), nil
}

func (c *Config) SetDefault() *Config {
	if c.ValidityHours <= 0 {
		c.ValidityHours = DefaultValidityHours
	}
	return c
}
