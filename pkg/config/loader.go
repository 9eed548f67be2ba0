package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Option configures a Load call.
type Option func(*options)

type options struct {
	envFiles []string
	prefix   string
}

// WithEnvFiles loads the given .env files instead of the default one.
// Variables already set in the process environment are not overridden.
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.envFiles = append(o.envFiles, files...)
	}
}

// WithPrefix prepends prefix to every env tag of the struct.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// Load parses environment variables into the struct pointed to by v.
//
// Without WithEnvFiles, the default .env file in the working directory is
// loaded once per process if it exists. Fields are populated according to
// their `env` and `envDefault` tags.
//
// Example:
//
//	type ValidatorConfig struct {
//		Strict      bool `env:"STRICT" envDefault:"false"`
//		MaxValueLen int  `env:"MAX_VALUE_LEN" envDefault:"64"`
//	}
//
//	var cfg ValidatorConfig
//	err := config.Load(&cfg, config.WithPrefix("ARGVALIDATOR_"))
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if len(o.envFiles) > 0 {
		if err := godotenv.Load(o.envFiles...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	} else {
		defaultEnvLoaded.Do(func() {
			// Ignore errors - the .env file might not exist and that's ok
			_ = godotenv.Load()
		})
	}

	if err := env.ParseWithOptions(v, env.Options{Prefix: o.prefix}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
//
// Example:
//
//	var cfg ValidatorConfig
//	config.MustLoad(&cfg)
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}
