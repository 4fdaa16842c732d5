// Package settings provides read access to named, installation-wide
// configuration values such as the organization display name.
//
// Store.Load returns ErrSettingNotFound when a key is absent; callers treat
// that as an expected condition rather than a failure. Three backends are
// available: MemoryStore (tests, single-binary setups seeded from env),
// RedisStore (one Redis hash) and PostgresStore (a key/value table created
// by the pg package migrations).
package settings
