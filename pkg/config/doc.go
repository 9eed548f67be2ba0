// Package config loads configuration structs from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
//
//   - Loads values from one or more `.env` files (WithEnvFiles), falling back
//     to the default `.env` in the current working directory.
//   - Parses the environment into any Go struct using `env` field tags, with
//     an optional variable name prefix (WithPrefix).
//   - MustLoad panics on failure for configuration the program cannot run without.
//
// # Usage
//
//	type Config struct {
//	    Strict      bool `env:"STRICT" envDefault:"false"`
//	    MaxValueLen int  `env:"MAX_VALUE_LEN" envDefault:"64"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg, config.WithPrefix("ARGVALIDATOR_")); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with `errors.Is`:
//
//   - `ErrParsingConfig`  – failed to parse env vars into struct.
//   - `ErrLoadingEnvFile` – an explicitly requested .env file could not be read.
//   - `ErrNilPointer`     – nil pointer passed to `Load`/`MustLoad`.
//
// # See Also
//
//   - https://github.com/joho/godotenv – .env file loader.
//   - https://github.com/caarlos0/env – environment parser.
package config
