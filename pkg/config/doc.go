// Package config loads process configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - The default `.env` file in the working directory is read once, if present.
//   - Structs are populated from `env` / `envDefault` field tags.
//   - Each configuration type is parsed once and cached for the process lifetime.
//
// # Usage
//
//	type StoreConfig struct {
//	    Database   string `env:"MONGODB_DATABASE"`
//	    Collection string `env:"SESSION_COLLECTION" envDefault:"sessions"`
//	}
//
//	var cfg StoreConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// Additional files can be applied with LoadEnv before the first Load.
//
// # Error Handling
//
//   - ErrParsingConfig  – env vars could not be parsed into the struct.
//   - ErrLoadingEnvFile – a file passed to LoadEnv could not be read.
//   - ErrNilPointer     – nil pointer passed to Load / MustLoad.
//
// # Testing Helpers
//
// ResetCache clears every cached configuration so tests can observe a changed
// environment.
package config
