package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// Event is one occurrence of a named domain event.
type Event struct {
	Name       string          `json:"name"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Listener receives event occurrences.
type Listener func(ctx context.Context, evt Event)

// Source lets consumers subscribe a listener to an event name.
type Source interface {
	On(name string, l Listener)
}

// Publisher emits event occurrences.
type Publisher interface {
	Publish(ctx context.Context, name string, payload any) error
}

// New builds an Event. Payloads of type json.RawMessage or []byte are used
// as-is and must be valid JSON; anything else is marshalled.
func New(name string, payload any) (Event, error) {
	if name == "" {
		return Event{}, ErrEmptyEventName
	}

	evt := Event{Name: name, OccurredAt: time.Now().UTC()}

	switch p := payload.(type) {
	case nil:
	case json.RawMessage:
		if !json.Valid(p) {
			return Event{}, ErrInvalidPayload
		}
		evt.Payload = p
	case []byte:
		if !json.Valid(p) {
			return Event{}, ErrInvalidPayload
		}
		evt.Payload = json.RawMessage(p)
	default:
		data, err := json.Marshal(p)
		if err != nil {
			return Event{}, errors.Join(ErrInvalidPayload, err)
		}
		evt.Payload = data
	}

	return evt, nil
}

// Decode unmarshals the payload into v.
func (e Event) Decode(v any) error {
	if len(e.Payload) == 0 {
		return ErrEmptyPayload
	}
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return errors.Join(ErrInvalidPayload, err)
	}
	return nil
}

// invoke runs a single listener, converting a panic into an error log.
func invoke(ctx context.Context, log *slog.Logger, l Listener, evt Event) {
	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "event listener panicked",
				logger.Event(evt.Name),
				slog.Any("panic", r),
			)
		}
	}()
	l(ctx, evt)
}
