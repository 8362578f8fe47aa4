// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	perr "mortgage-agent/errors"
)

const (
	SourceFile  = "file"
	SourceRedis = "redis"
)

type Config struct {
	Source      string `env:"MORTGAGE_SOURCE,default=file" validate:"oneof=file redis"`
	InputDir    string `env:"MORTGAGE_INPUT_DIR,default=."`
	InputFile   string `env:"MORTGAGE_INPUT_FILE,default=prospects.txt" validate:"required"`
	RedisAddr   string `env:"REDIS_ADDR,default=localhost:6379" validate:"required_if=Source redis"`
	RedisPrefix string `env:"REDIS_KEY_PREFIX,default=prospects:"`

	HTTPAddr      string        `env:"HTTP_ADDR,default=:8080" validate:"required"`
	RateLimit     int           `env:"RATE_LIMIT,default=5" validate:"gt=0"`
	RateWindow    time.Duration `env:"RATE_WINDOW,default=1m" validate:"gt=0"`
	MaxBodyBytes  int64         `env:"MAX_BODY_BYTES,default=1048576" validate:"gt=0"`
	MaxTermYears  int           `env:"MAX_TERM_YEARS,default=100" validate:"gt=0"`
	ShutdownAfter time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s" validate:"gt=0"`

	LogLevel  string `env:"LOG_LEVEL,default=warn"`
	LogFormat string `env:"LOG_FORMAT,default=console" validate:"oneof=console json"`
}

var validate = validator.New()

// Load reads .env files (missing files are ignored), then the environment.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, perr.Wrap(err, perr.ErrorCodeValidation, "config error")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints; flags may change a loaded Config so callers re-validate.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return perr.Wrap(err, perr.ErrorCodeValidation, fmt.Sprintf("invalid config (source=%q)", c.Source))
	}
	return nil
}
