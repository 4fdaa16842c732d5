package events

import "errors"

var (
	ErrEmptyEventName     = errors.New("events: empty event name")
	ErrInvalidPayload     = errors.New("events: invalid event payload")
	ErrEmptyPayload       = errors.New("events: event has no payload")
	ErrSubscriptionClosed = errors.New("events: subscription channel closed")
	ErrNoListeners        = errors.New("events: no listeners registered")
)
