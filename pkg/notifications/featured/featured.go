// Package featured notifies comment authors when a moderator features
// their comment.
package featured

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/notifykit/pkg/comments"
	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/notifications"
)

// Category is the notification category and translation key segment.
const Category = "featured"

// Handler implements notifications.Handler for featured comments.
type Handler struct {
	store  comments.Store
	logger *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used for skipped events.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// New creates a featured-comment handler reading from store.
func New(store comments.Store, opts ...Option) *Handler {
	h := &Handler{store: store, logger: logger.Discard()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Category() string { return Category }
func (h *Handler) Event() string    { return comments.EventCommentFeatured }

// Handle notifies the comment author if they enabled comments.SettingOnFeatured.
// A payload without a comment id is skipped.
func (h *Handler) Handle(ctx context.Context, evt events.Event) (*notifications.Notification, error) {
	var p comments.CommentEvent
	if err := evt.Decode(&p); err != nil {
		return nil, err
	}
	if p.Comment.ID == "" {
		h.logger.DebugContext(ctx, "featured event without comment id", logger.Event(evt.Name))
		return nil, nil
	}

	comment, err := h.store.GetComment(ctx, p.Comment.ID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID == "" {
		return nil, nil
	}
	author, err := h.store.GetUser(ctx, comment.AuthorID)
	if err != nil {
		return nil, err
	}
	if !author.Enabled(comments.SettingOnFeatured) {
		return nil, nil
	}

	date := p.Comment.CreatedAt
	if date.IsZero() {
		date = comment.CreatedAt
	}
	return &notifications.Notification{UserID: author.ID, Date: date, Context: comment.ID}, nil
}

// Hydrate returns [asset headline, comment permalink].
func (h *Handler) Hydrate(ctx context.Context, _ string, commentID string) ([]string, error) {
	comment, err := h.store.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	asset, err := h.store.GetAsset(ctx, comment.AssetID)
	if err != nil {
		return nil, err
	}
	return []string{asset.Title, asset.Permalink(comment.ID)}, nil
}
