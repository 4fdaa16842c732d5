package events

import (
	"log/slog"

	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// DefaultChannelPrefix is prepended to event names to build Redis channel names.
const DefaultChannelPrefix = "events:"

type options struct {
	logger *slog.Logger
	prefix string
}

func defaultOptions() *options {
	return &options{
		logger: logger.Discard(),
		prefix: DefaultChannelPrefix,
	}
}

// Option configures MemoryBus, RedisSource and RedisPublisher.
type Option func(*options)

// WithLogger sets the logger used to report listener panics and malformed messages.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithChannelPrefix sets the Redis channel prefix. Ignored by MemoryBus.
func WithChannelPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}
