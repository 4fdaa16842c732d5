package main

import (
	"time"

	"github.com/dmitrymomot/notifykit/pkg/email"
	"github.com/dmitrymomot/notifykit/pkg/httpserver"
	"github.com/dmitrymomot/notifykit/pkg/mongo"
	"github.com/dmitrymomot/notifykit/pkg/pg"
	"github.com/dmitrymomot/notifykit/pkg/redis"
)

// Backend names accepted by EVENT_SOURCE, SETTINGS_BACKEND and COMMENTS_BACKEND.
const (
	backendMemory   = "memory"
	backendRedis    = "redis"
	backendPostgres = "postgres"
	backendMongo    = "mongo"
)

type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"notifier"`

	EventSource     string        `env:"EVENT_SOURCE" envDefault:"memory"`
	SettingsBackend string        `env:"SETTINGS_BACKEND" envDefault:"memory"`
	SettingsTTL     time.Duration `env:"SETTINGS_CACHE_TTL" envDefault:"30s"`
	CommentsBackend string        `env:"COMMENTS_BACKEND" envDefault:"memory"`

	Secret         string `env:"APP_SECRET,required"`
	JWTIssuer      string `env:"JWT_ISSUER" envDefault:"notifier"`
	JWTAudience    string `env:"JWT_AUDIENCE" envDefault:"notifications"`
	UnsubscribeURL string `env:"UNSUBSCRIBE_URL"`

	DefaultLanguage  string `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	EmailDevDir      string `env:"EMAIL_DEV_DIR"`
	OrganizationName string `env:"ORGANIZATION_NAME"`
}

// Config is the notifier's full configuration.
type Config struct {
	App   appConfig
	HTTP  httpserver.Config
	Email email.Config
	Redis redis.Config
	PG    pg.Config
	Mongo mongo.Config
}

func (c Config) needsRedis() bool {
	return c.App.EventSource == backendRedis || c.App.SettingsBackend == backendRedis
}
