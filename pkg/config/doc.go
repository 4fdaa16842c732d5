// Package config loads typed configuration from environment variables.
//
// Structs are described with caarlos0/env tags. Load reads the default .env
// file once (via godotenv), parses the struct and caches the result per type,
// so packages that need the same configuration can call Load independently
// without re-parsing:
//
//	var cfg email.Config
//	config.MustLoad(&cfg)
//
// LoadEnv reads additional .env files explicitly. Variables already present
// in the environment always win.
package config
