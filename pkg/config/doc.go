// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment.
//   - Load parses the environment into any struct using `env` field tags and
//     caches the result per type, so each configuration is parsed once.
//   - MustLoadEnv and MustLoad panic on failure for start-up code.
//   - ForceReload and ResetCache drop cached values; handy in tests.
//
// Every relay package that needs settings exposes its own Config struct
// (relay.Config, webhook.Config, redis.Config, deadletter.Config, ...) and the
// binary loads each of them through this package:
//
//	var relayCfg relay.Config
//	if err := config.Load(&relayCfg); err != nil {
//	    return err
//	}
//
// # Error Handling
//
//   - ErrParsingConfig: env vars could not be parsed into the struct.
//   - ErrLoadingEnvFile: a requested .env file could not be read.
//   - ErrConfigNotLoaded: the cache lost the value between parse and read.
//   - ErrNilPointer: nil pointer passed to Load or MustLoad.
package config
