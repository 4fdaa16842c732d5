package notifications

import (
	"context"
	"time"

	"github.com/dmitrymomot/notifykit/pkg/events"
)

// Handler produces at most one notification per event occurrence.
type Handler interface {
	// Category is the unique notification type, e.g. "featured".
	Category() string
	// Event is the event name the handler subscribes to.
	Event() string
	// Handle evaluates one occurrence. It returns nil when nobody should be
	// notified, including when the recipient has not opted in.
	Handle(ctx context.Context, evt events.Event) (*Notification, error)
	// Hydrate returns the ordered body template values for the entity
	// referenced by ref (Notification.Context).
	Hydrate(ctx context.Context, category, ref string) ([]string, error)
}

// Superseder is implemented by handlers whose notification replaces other
// categories produced for the same occurrence.
type Superseder interface {
	SupersedesCategories() []string
}

// Notification is a handler's decision to notify one user.
type Notification struct {
	UserID string
	Date   time.Time
	// Context references the entity the notification is about, e.g. a comment id.
	Context string
}

// Candidate is a notification together with the handler that produced it.
type Candidate struct {
	Notification
	Handler Handler
	// Rank is the handler's registration order. Lower ranks win mutual supersession.
	Rank int
}

// Category returns the producing handler's category.
func (c Candidate) Category() string {
	return c.Handler.Category()
}

func supersededBy(h Handler) []string {
	if s, ok := h.(Superseder); ok {
		return s.SupersedesCategories()
	}
	return nil
}
