// Package reply notifies comment authors about replies to their comments.
//
// Two handlers share the commentAdded event. Handler covers every reply;
// StaffHandler covers replies written by staff and supersedes Handler, so an
// author answered by staff receives only the staff notification.
package reply

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/notifykit/pkg/comments"
	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/notifications"
)

// Notification categories handled by this package.
const (
	Category      = "reply"
	StaffCategory = "staffReply"
)

type options struct {
	logger *slog.Logger
}

// Option configures Handler and StaffHandler.
type Option func(*options)

// WithLogger sets the logger used for skipped events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: logger.Discard()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// thread is a reply with the users involved.
type thread struct {
	reply     comments.Comment
	replier   comments.User
	recipient comments.User
	ref       comments.CommentRef
}

// resolve loads the reply, its parent and both authors.
// A nil thread means there is nobody to notify.
func resolve(ctx context.Context, store comments.Store, log *slog.Logger, evt events.Event) (*thread, error) {
	var p comments.CommentEvent
	if err := evt.Decode(&p); err != nil {
		return nil, err
	}
	if p.Comment.ID == "" {
		log.DebugContext(ctx, "reply event without comment id", logger.Event(evt.Name))
		return nil, nil
	}

	reply, err := store.GetComment(ctx, p.Comment.ID)
	if err != nil {
		return nil, err
	}
	if reply.ParentID == "" {
		return nil, nil
	}
	parent, err := store.GetComment(ctx, reply.ParentID)
	if err != nil {
		return nil, err
	}
	if parent.AuthorID == "" || parent.AuthorID == reply.AuthorID {
		return nil, nil
	}

	replier, err := store.GetUser(ctx, reply.AuthorID)
	if err != nil {
		return nil, err
	}
	recipient, err := store.GetUser(ctx, parent.AuthorID)
	if err != nil {
		return nil, err
	}
	return &thread{reply: reply, replier: replier, recipient: recipient, ref: p.Comment}, nil
}

func (t *thread) notification() *notifications.Notification {
	date := t.ref.CreatedAt
	if date.IsZero() {
		date = t.reply.CreatedAt
	}
	return &notifications.Notification{UserID: t.recipient.ID, Date: date, Context: t.reply.ID}
}

// hydrate returns [replier username, asset headline, reply permalink].
func hydrate(ctx context.Context, store comments.Store, replyID string) ([]string, error) {
	reply, err := store.GetComment(ctx, replyID)
	if err != nil {
		return nil, err
	}
	replier, err := store.GetUser(ctx, reply.AuthorID)
	if err != nil {
		return nil, err
	}
	asset, err := store.GetAsset(ctx, reply.AssetID)
	if err != nil {
		return nil, err
	}
	return []string{replier.Username, asset.Title, asset.Permalink(reply.ID)}, nil
}

// Handler notifies the parent comment's author about any reply.
type Handler struct {
	store comments.Store
	opts  *options
}

// New creates the reply handler reading from store.
func New(store comments.Store, opts ...Option) *Handler {
	return &Handler{store: store, opts: newOptions(opts)}
}

func (h *Handler) Category() string { return Category }
func (h *Handler) Event() string    { return comments.EventCommentAdded }

// Handle notifies the parent author if they enabled comments.SettingOnReply.
func (h *Handler) Handle(ctx context.Context, evt events.Event) (*notifications.Notification, error) {
	t, err := resolve(ctx, h.store, h.opts.logger, evt)
	if err != nil || t == nil {
		return nil, err
	}
	if !t.recipient.Enabled(comments.SettingOnReply) {
		return nil, nil
	}
	return t.notification(), nil
}

// Hydrate returns [replier username, asset headline, reply permalink].
func (h *Handler) Hydrate(ctx context.Context, _ string, replyID string) ([]string, error) {
	return hydrate(ctx, h.store, replyID)
}

// StaffHandler notifies the parent comment's author about replies from staff.
type StaffHandler struct {
	store comments.Store
	opts  *options
}

// NewStaff creates the staff reply handler reading from store.
func NewStaff(store comments.Store, opts ...Option) *StaffHandler {
	return &StaffHandler{store: store, opts: newOptions(opts)}
}

func (h *StaffHandler) Category() string { return StaffCategory }
func (h *StaffHandler) Event() string    { return comments.EventCommentAdded }

func (h *StaffHandler) SupersedesCategories() []string { return []string{Category} }

// Handle notifies the parent author about a staff reply if they enabled
// comments.SettingOnStaffReply.
func (h *StaffHandler) Handle(ctx context.Context, evt events.Event) (*notifications.Notification, error) {
	t, err := resolve(ctx, h.store, h.opts.logger, evt)
	if err != nil || t == nil {
		return nil, err
	}
	if !t.replier.IsStaff() || !t.recipient.Enabled(comments.SettingOnStaffReply) {
		return nil, nil
	}
	return t.notification(), nil
}

func (h *StaffHandler) Hydrate(ctx context.Context, _ string, replyID string) ([]string, error) {
	return hydrate(ctx, h.store, replyID)
}
