// Package config loads application settings from the environment.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr         string `env:"GONOTES_ADDR" env-default:":5000"`
	DatabasePath string `env:"GONOTES_DATABASE" env-default:"gonotes.db"`
	SecretKey    string `env:"GONOTES_SECRET_KEY" env-default:"development-key"`
	TemplatesDir string `env:"GONOTES_TEMPLATES" env-default:"templates"`
	Env          string `env:"GONOTES_ENV" env-default:"production"`
}

// Load reads a .env file when one is present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Development() bool { return c.Env == "development" }
