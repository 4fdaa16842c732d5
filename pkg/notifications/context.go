package notifications

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/notifykit/pkg/i18n"
	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// SystemActor identifies work done by the dispatcher rather than an end user.
const SystemActor = "system:notifications"

type (
	actorKey      struct{}
	dispatchIDKey struct{}
)

// SystemContext derives the context one dispatch runs in. It keeps parent's
// values but not its cancellation, and carries the system actor, the dispatch
// id and the locale used for translations.
func SystemContext(parent context.Context, dispatchID, locale string) context.Context {
	ctx := context.WithoutCancel(parent)
	ctx = context.WithValue(ctx, actorKey{}, SystemActor)
	ctx = context.WithValue(ctx, dispatchIDKey{}, dispatchID)
	return i18n.SetLocale(ctx, locale)
}

// Actor returns the actor stored on ctx.
func Actor(ctx context.Context) (string, bool) {
	a, ok := ctx.Value(actorKey{}).(string)
	return a, ok && a != ""
}

// DispatchID returns the dispatch id stored on ctx.
func DispatchID(ctx context.Context) string {
	id, _ := ctx.Value(dispatchIDKey{}).(string)
	return id
}

// LogExtractor adds the dispatch id to log records written with a dispatch context.
func LogExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := DispatchID(ctx); id != "" {
			return logger.DispatchID(id), true
		}
		return slog.Attr{}, false
	}
}
