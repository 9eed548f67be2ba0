package validator

import (
	"errors"

	"github.com/dmitrymomot/argvalidator/pkg/config"
	"github.com/dmitrymomot/argvalidator/pkg/logger"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "ARGVALIDATOR_"

// ErrInvalidConfig is returned by NewFromConfig for unusable settings.
var ErrInvalidConfig = errors.New("invalid validator config")

// Config holds the environment-driven settings of a Validator.
type Config struct {
	Strict      bool   `env:"STRICT" envDefault:"false"`
	MaxValueLen int    `env:"MAX_VALUE_LEN" envDefault:"64"`
	Debug       bool   `env:"DEBUG" envDefault:"false"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`
}

// LoadConfig reads Config from ARGVALIDATOR_* environment variables.
func LoadConfig(opts ...config.Option) (Config, error) {
	var cfg Config
	opts = append([]config.Option{config.WithPrefix(EnvPrefix)}, opts...)
	if err := config.Load(&cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewFromConfig creates a Validator from cfg. When cfg.Debug is set, a logger
// is built from LogLevel and LogFormat; options passed here take precedence.
func NewFromConfig(cfg Config, opts ...Option) (*Validator, error) {
	if cfg.MaxValueLen < 0 {
		return nil, errors.Join(ErrInvalidConfig, errors.New("max value length must not be negative"))
	}

	base := []Option{
		WithStrict(cfg.Strict),
		WithMaxValueLen(cfg.MaxValueLen),
	}

	if cfg.Debug {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		format, err := logger.ParseFormat(cfg.LogFormat)
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		base = append(base, WithLogger(logger.New(
			logger.WithLevel(level),
			logger.WithFormat(format),
		)))
	}

	return New(append(base, opts...)...), nil
}
