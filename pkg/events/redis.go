package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// RedisSource subscribes to Redis pub/sub channels and forwards messages to listeners.
type RedisSource struct {
	client redis.UniversalClient
	prefix string
	logger *slog.Logger

	mu        sync.RWMutex
	listeners map[string][]Listener
	inflight  sync.WaitGroup
}

// NewRedisSource creates a Source backed by Redis pub/sub.
func NewRedisSource(client redis.UniversalClient, opts ...Option) *RedisSource {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &RedisSource{
		client:    client,
		prefix:    o.prefix,
		logger:    o.logger,
		listeners: make(map[string][]Listener),
	}
}

// On subscribes l to events named name. Listeners must be registered before Run.
func (s *RedisSource) On(name string, l Listener) {
	if name == "" || l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[name] = append(s.listeners[name], l)
}

func (s *RedisSource) channels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chs := make([]string, 0, len(s.listeners))
	for name := range s.listeners {
		chs = append(chs, s.prefix+name)
	}
	return chs
}

// Run subscribes to every registered event channel and blocks until ctx is
// done or the subscription fails. In-flight listeners are awaited before Run
// returns.
func (s *RedisSource) Run(ctx context.Context) error {
	channels := s.channels()
	if len(channels) == 0 {
		return ErrNoListeners
	}

	pubsub := s.client.Subscribe(ctx, channels...)
	defer pubsub.Close()
	defer s.inflight.Wait()

	if _, err := pubsub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	s.logger.InfoContext(ctx, "subscribed to event channels", slog.Any("channels", channels))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return ErrSubscriptionClosed
			}
			evt, err := decodeMessage(s.prefix, msg.Channel, msg.Payload)
			if err != nil {
				s.logger.WarnContext(ctx, "skipping malformed event message",
					slog.String("channel", msg.Channel),
					logger.Error(err),
				)
				continue
			}
			s.emit(ctx, evt)
		}
	}
}

func (s *RedisSource) emit(ctx context.Context, evt Event) {
	s.mu.RLock()
	ls := s.listeners[evt.Name]
	s.mu.RUnlock()

	for _, l := range ls {
		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			invoke(ctx, s.logger, l, evt)
		}()
	}
}

// RedisPublisher publishes events to the channels RedisSource listens on.
type RedisPublisher struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisPublisher creates a Publisher backed by Redis pub/sub.
func NewRedisPublisher(client redis.UniversalClient, opts ...Option) *RedisPublisher {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &RedisPublisher{client: client, prefix: o.prefix}
}

// Publish encodes the event envelope and publishes it on "<prefix><name>".
func (p *RedisPublisher) Publish(ctx context.Context, name string, payload any) error {
	evt, err := New(name, payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return errors.Join(ErrInvalidPayload, err)
	}
	return p.client.Publish(ctx, p.prefix+name, data).Err()
}

// decodeMessage turns a pub/sub message into an Event. The channel name is
// authoritative for the event name.
func decodeMessage(prefix, channel, payload string) (Event, error) {
	name := strings.TrimPrefix(channel, prefix)
	if name == "" {
		return Event{}, ErrEmptyEventName
	}

	var evt Event
	if err := json.Unmarshal([]byte(payload), &evt); err != nil {
		return Event{}, errors.Join(ErrInvalidPayload, err)
	}
	evt.Name = name
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	return evt, nil
}
