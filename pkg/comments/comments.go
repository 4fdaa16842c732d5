package comments

import (
	"context"
	"net/url"
	"time"
)

// Notification setting names stored on User.NotificationSettings.
const (
	SettingOnFeatured   = "onFeatured"
	SettingOnReply      = "onReply"
	SettingOnStaffReply = "onStaffReply"
)

// Roles that count as staff.
const (
	RoleCommenter = "commenter"
	RoleStaff     = "staff"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Comment is a single comment or reply.
type Comment struct {
	ID        string    `bson:"_id" json:"id"`
	AuthorID  string    `bson:"author_id" json:"author_id"`
	ParentID  string    `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	AssetID   string    `bson:"asset_id" json:"asset_id"`
	Body      string    `bson:"body" json:"body"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// User is a comment author and notification recipient.
type User struct {
	ID                   string          `bson:"_id" json:"id"`
	Username             string          `bson:"username" json:"username"`
	Email                string          `bson:"email" json:"email"`
	Role                 string          `bson:"role" json:"role"`
	NotificationSettings map[string]bool `bson:"notification_settings" json:"notification_settings"`
}

// Enabled reports whether the user opted in to setting.
func (u User) Enabled(setting string) bool {
	return u.NotificationSettings[setting]
}

// IsStaff reports whether the user speaks for the organization.
func (u User) IsStaff() bool {
	switch u.Role {
	case RoleStaff, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// Asset is the page a comment thread belongs to.
type Asset struct {
	ID    string `bson:"_id" json:"id"`
	Title string `bson:"title" json:"title"`
	URL   string `bson:"url" json:"url"`
}

// Permalink returns the asset URL pointing at commentID.
func (a Asset) Permalink(commentID string) string {
	u, err := url.Parse(a.URL)
	if err != nil {
		return a.URL + "?commentId=" + url.QueryEscape(commentID)
	}
	q := u.Query()
	q.Set("commentId", commentID)
	u.RawQuery = q.Encode()
	return u.String()
}

// Store looks up comments, users and assets.
type Store interface {
	GetComment(ctx context.Context, id string) (Comment, error)
	GetUser(ctx context.Context, id string) (User, error)
	GetAsset(ctx context.Context, id string) (Asset, error)
	// DisableNotifications clears every notification setting of the user.
	DisableNotifications(ctx context.Context, userID string) error
}
