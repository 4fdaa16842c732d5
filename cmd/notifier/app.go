package main

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/notifykit/pkg/comments"
	"github.com/dmitrymomot/notifykit/pkg/email"
	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/httpserver"
	"github.com/dmitrymomot/notifykit/pkg/i18n"
	"github.com/dmitrymomot/notifykit/pkg/jwt"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/mailer"
	"github.com/dmitrymomot/notifykit/pkg/mongo"
	"github.com/dmitrymomot/notifykit/pkg/notifications"
	"github.com/dmitrymomot/notifykit/pkg/notifications/featured"
	"github.com/dmitrymomot/notifykit/pkg/notifications/reply"
	"github.com/dmitrymomot/notifykit/pkg/pg"
	"github.com/dmitrymomot/notifykit/pkg/redis"
	"github.com/dmitrymomot/notifykit/pkg/secrets"
	"github.com/dmitrymomot/notifykit/pkg/settings"
	"github.com/dmitrymomot/notifykit/pkg/unsubscribe"
)

//go:embed translations/*.yaml
var translations embed.FS

// app holds the wired components of a running notifier.
type app struct {
	log         *slog.Logger
	manager     *notifications.Manager
	publisher   events.Publisher
	issuer      *unsubscribe.Issuer
	revocations unsubscribe.Revocations
	comments    comments.Store
	checks      map[string]httpserver.Check

	runners []func(context.Context) error
	closers []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func newApp(ctx context.Context, cfg Config, log *slog.Logger) (_ *app, err error) {
	a := &app{log: log, checks: map[string]httpserver.Check{}}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	var rdb *goredis.Client
	if cfg.needsRedis() {
		if rdb, err = redis.Connect(ctx, cfg.Redis); err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		a.checks["redis"] = redis.Healthcheck(rdb)
	}

	store, err := a.settingsStore(ctx, cfg, rdb)
	if err != nil {
		return nil, err
	}
	if a.comments, err = a.commentsStore(ctx, cfg); err != nil {
		return nil, err
	}

	translator, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(translations, "translations"),
		i18n.WithDefaultLanguage(cfg.App.DefaultLanguage),
		i18n.WithFallbackToKey(true),
		i18n.WithMissingTranslationsLogging(true),
		i18n.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	key, err := secrets.DeriveKey([]byte(cfg.App.Secret), secrets.PurposeUnsubscribe)
	if err != nil {
		return nil, err
	}
	signer, err := jwt.New(key, jwt.WithIssuer(cfg.App.JWTIssuer), jwt.WithAudience(cfg.App.JWTAudience))
	if err != nil {
		return nil, err
	}
	a.issuer = unsubscribe.NewIssuer(signer)
	if rdb != nil {
		a.revocations = unsubscribe.NewRedisRevocations(rdb, "")
	} else {
		a.revocations = unsubscribe.NewMemoryRevocations()
	}

	sender, err := emailSender(cfg)
	if err != nil {
		return nil, err
	}
	transport := mailer.New(sender, a.comments, cfg.App.UnsubscribeURL, mailer.WithLogger(log))
	if cfg.App.UnsubscribeURL == "" {
		log.WarnContext(ctx, "UNSUBSCRIBE_URL is not set, notification emails will have no unsubscribe link")
	}

	registry := notifications.NewRegistry()
	if err := registry.Register(
		featured.New(a.comments, featured.WithLogger(log)),
		reply.New(a.comments, reply.WithLogger(log)),
		reply.NewStaff(a.comments, reply.WithLogger(log)),
	); err != nil {
		return nil, err
	}

	a.manager = notifications.NewManager(registry, store, a.issuer, translator, transport,
		notifications.WithLogger(log),
		notifications.WithLocale(cfg.App.DefaultLanguage),
	)

	switch cfg.App.EventSource {
	case backendMemory:
		bus := events.NewMemoryBus(events.WithLogger(log))
		if err := a.manager.Attach(bus); err != nil {
			return nil, err
		}
		a.publisher = bus
	case backendRedis:
		src := events.NewRedisSource(rdb, events.WithLogger(log))
		if err := a.manager.Attach(src); err != nil {
			return nil, err
		}
		a.runners = append(a.runners, src.Run)
		a.publisher = events.NewRedisPublisher(rdb, events.WithLogger(log))
	default:
		return nil, fmt.Errorf("%w: EVENT_SOURCE=%q", ErrUnknownBackend, cfg.App.EventSource)
	}

	log.InfoContext(ctx, "notifier configured",
		logger.Component("notifier"),
		slog.String("event_source", cfg.App.EventSource),
		slog.String("settings_backend", cfg.App.SettingsBackend),
		slog.String("comments_backend", cfg.App.CommentsBackend),
	)
	return a, nil
}

func (a *app) settingsStore(ctx context.Context, cfg Config, rdb *goredis.Client) (settings.Store, error) {
	org := cfg.App.OrganizationName

	switch cfg.App.SettingsBackend {
	case backendMemory:
		return settings.NewMemoryStore(map[string]string{settings.KeyOrganizationName: org}), nil

	case backendRedis:
		store := settings.NewRedisStore(rdb, settings.DefaultRedisHash)
		if org != "" {
			if err := store.Save(ctx, settings.KeyOrganizationName, org); err != nil {
				return nil, err
			}
		}
		return settings.NewCached(store, cfg.App.SettingsTTL), nil

	case backendPostgres:
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		a.checks["postgres"] = pg.Healthcheck(pool)
		if err := pg.Migrate(ctx, pool, cfg.PG, nil, a.log); err != nil {
			return nil, err
		}
		store := settings.NewPostgresStore(pool)
		if org != "" {
			if err := store.Save(ctx, settings.KeyOrganizationName, org); err != nil {
				return nil, err
			}
		}
		return settings.NewCached(store, cfg.App.SettingsTTL), nil
	}
	return nil, fmt.Errorf("%w: SETTINGS_BACKEND=%q", ErrUnknownBackend, cfg.App.SettingsBackend)
}

func (a *app) commentsStore(ctx context.Context, cfg Config) (comments.Store, error) {
	switch cfg.App.CommentsBackend {
	case backendMemory:
		return comments.NewMemoryStore(), nil
	case backendMongo:
		client, err := mongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Disconnect(context.Background()) })
		a.checks["mongo"] = mongo.Healthcheck(client)
		db, err := mongo.Database(client, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return comments.NewMongoStore(db), nil
	}
	return nil, fmt.Errorf("%w: COMMENTS_BACKEND=%q", ErrUnknownBackend, cfg.App.CommentsBackend)
}

// emailSender writes messages to EMAIL_DEV_DIR when it is set and sends
// through Postmark otherwise.
func emailSender(cfg Config) (email.EmailSender, error) {
	if cfg.App.EmailDevDir != "" {
		return email.NewDevSender(cfg.App.EmailDevDir), nil
	}
	if !cfg.Email.HasPostmark() {
		return nil, ErrNoEmailSender
	}
	return email.NewPostmarkClient(cfg.Email)
}
