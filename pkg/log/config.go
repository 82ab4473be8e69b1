package log

import "github.com/rs/zerolog"

type Config struct {
	Level  string `envconfig:"optional"`
	Pretty bool   `envconfig:"optional"`
}

// SetDefault fills empty fields and normalizes an unknown level to info.
func (c *Config) SetDefault() *Config {
	if c.Level == "" {
		c.Level = zerolog.LevelInfoValue
	}

	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		c.Level = zerolog.LevelInfoValue
	}

	return c
}
