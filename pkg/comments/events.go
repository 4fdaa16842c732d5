package comments

import "time"

// Event names published by the comment service.
const (
	EventCommentAdded    = "commentAdded"
	EventCommentFeatured = "commentFeatured"
)

// CommentEvent is the payload of comment events.
type CommentEvent struct {
	Comment CommentRef `json:"comment"`
}

// CommentRef identifies the comment an event is about.
type CommentRef struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
