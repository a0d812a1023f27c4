// Package config loads gateway configuration from YAML files,
// .env files, and environment variables using viper and godotenv.
//
// Configuration is resolved in layers: a config.yml base, then a .env
// file, then process environment variables, with later layers winning.
// Every section follows the ApplyDefaults/Validate convention so a
// zero-value Config is usable in tests.
package config
