package reply_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/comments"
	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/i18n"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/notifications"
	"github.com/dmitrymomot/notifykit/pkg/notifications/reply"
	"github.com/dmitrymomot/notifykit/pkg/settings"
)

var created = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func seed() *comments.MemoryStore {
	s := comments.NewMemoryStore()
	s.PutAsset(comments.Asset{ID: "a1", Title: "Budget 2025", URL: "https://news.test/budget"})
	s.PutUser(comments.User{ID: "author", Username: "ann", NotificationSettings: map[string]bool{
		comments.SettingOnReply:      true,
		comments.SettingOnStaffReply: true,
	}})
	s.PutUser(comments.User{ID: "quiet", Username: "quinn"})
	s.PutUser(comments.User{ID: "reader", Username: "bob", Role: comments.RoleCommenter})
	s.PutUser(comments.User{ID: "editor", Username: "eve", Role: comments.RoleStaff})

	s.PutComment(comments.Comment{ID: "root", AuthorID: "author", AssetID: "a1", CreatedAt: created})
	s.PutComment(comments.Comment{ID: "quiet-root", AuthorID: "quiet", AssetID: "a1", CreatedAt: created})
	s.PutComment(comments.Comment{ID: "r-reader", AuthorID: "reader", ParentID: "root", AssetID: "a1", CreatedAt: created})
	s.PutComment(comments.Comment{ID: "r-editor", AuthorID: "editor", ParentID: "root", AssetID: "a1", CreatedAt: created})
	s.PutComment(comments.Comment{ID: "r-self", AuthorID: "author", ParentID: "root", AssetID: "a1", CreatedAt: created})
	s.PutComment(comments.Comment{ID: "r-quiet", AuthorID: "reader", ParentID: "quiet-root", AssetID: "a1", CreatedAt: created})
	return s
}

func addedEvent(t *testing.T, id string) events.Event {
	t.Helper()
	evt, err := events.New(comments.EventCommentAdded, comments.CommentEvent{Comment: comments.CommentRef{ID: id}})
	require.NoError(t, err)
	return evt
}

func TestHandlers_Handle(t *testing.T) {
	t.Parallel()

	store := seed()
	plain := reply.New(store)
	staff := reply.NewStaff(store)

	tests := []struct {
		name      string
		commentID string
		wantPlain bool
		wantStaff bool
	}{
		{name: "reply from reader", commentID: "r-reader", wantPlain: true},
		{name: "reply from staff", commentID: "r-editor", wantPlain: true, wantStaff: true},
		{name: "self reply", commentID: "r-self"},
		{name: "top level comment", commentID: "root"},
		{name: "recipient without settings", commentID: "r-quiet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			evt := addedEvent(t, tt.commentID)

			got, err := plain.Handle(context.Background(), evt)
			require.NoError(t, err)
			if tt.wantPlain {
				require.NotNil(t, got)
				assert.Equal(t, "author", got.UserID)
				assert.Equal(t, tt.commentID, got.Context)
				assert.Equal(t, created, got.Date)
			} else {
				assert.Nil(t, got)
			}

			got, err = staff.Handle(context.Background(), evt)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStaff, got != nil)
		})
	}
}

func TestHandlers_HandleErrors(t *testing.T) {
	t.Parallel()
	store := seed()

	_, err := reply.New(store).Handle(context.Background(), addedEvent(t, "missing"))
	require.ErrorIs(t, err, comments.ErrNotFound)

	_, err = reply.NewStaff(store).Handle(context.Background(), addedEvent(t, "missing"))
	require.ErrorIs(t, err, comments.ErrNotFound)
}

func TestHandlers_MissingCommentIDLogsAtDebug(t *testing.T) {
	t.Parallel()
	store := seed()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter(), logger.WithLevel(slog.LevelDebug))

	for _, h := range []notifications.Handler{
		reply.New(store, reply.WithLogger(log)),
		reply.NewStaff(store, reply.WithLogger(log)),
	} {
		buf.Reset()
		got, err := h.Handle(context.Background(), addedEvent(t, ""))
		require.NoError(t, err, h.Category())
		assert.Nil(t, got, h.Category())
		assert.Contains(t, buf.String(), "level=DEBUG", h.Category())
		assert.Contains(t, buf.String(), "reply event without comment id", h.Category())
	}
}

func TestHandlers_Hydrate(t *testing.T) {
	t.Parallel()
	store := seed()

	want := []string{"eve", "Budget 2025", "https://news.test/budget?commentId=r-editor"}

	got, err := reply.New(store).Hydrate(context.Background(), reply.Category, "r-editor")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = reply.NewStaff(store).Hydrate(context.Background(), reply.StaffCategory, "r-editor")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStaffHandler_Supersedes(t *testing.T) {
	t.Parallel()
	var h notifications.Superseder = reply.NewStaff(seed())
	assert.Equal(t, []string{reply.Category}, h.SupersedesCategories())
}

type capturingTransport struct {
	mu   sync.Mutex
	msgs []notifications.Message
}

func (c *capturingTransport) Send(_ context.Context, msg notifications.Message) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
	return "task", nil
}

type staticIssuer struct{}

func (staticIssuer) Issue(string) (string, error) { return "token", nil }

func TestDispatch_StaffReplySupersedesReply(t *testing.T) {
	t.Parallel()

	store := seed()
	reg := notifications.NewRegistry()
	require.NoError(t, reg.Register(reply.New(store), reply.NewStaff(store)))

	tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: map[string]map[string]any{
		"en": {"notifications": map[string]any{"categories": map[string]any{
			"reply":      map[string]any{"subject": "{0}: new reply", "body": "{0} replied on {1}: {2}"},
			"staffReply": map[string]any{"subject": "{0}: staff replied", "body": "{0} from our team replied on {1}: {2}"},
		}}},
	}})
	require.NoError(t, err)

	transport := &capturingTransport{}
	mgr := notifications.NewManager(reg,
		settings.NewMemoryStore(map[string]string{settings.KeyOrganizationName: "Daily News"}),
		staticIssuer{}, tr, transport,
		notifications.WithLogger(logger.Discard()),
	)

	bus := events.NewMemoryBus()
	require.NoError(t, mgr.Attach(bus))

	require.NoError(t, bus.Publish(context.Background(), comments.EventCommentAdded,
		comments.CommentEvent{Comment: comments.CommentRef{ID: "r-editor"}}))
	require.NoError(t, bus.Publish(context.Background(), comments.EventCommentAdded,
		comments.CommentEvent{Comment: comments.CommentRef{ID: "r-reader"}}))

	transport.mu.Lock()
	defer transport.mu.Unlock()
	require.Len(t, transport.msgs, 2)

	staffMsg, plainMsg := transport.msgs[0], transport.msgs[1]
	assert.Equal(t, reply.StaffCategory, staffMsg.Category)
	assert.Equal(t, "Daily News: staff replied", staffMsg.Subject)
	assert.Equal(t, "eve from our team replied on Budget 2025: https://news.test/budget?commentId=r-editor", staffMsg.Locals.Body)

	assert.Equal(t, reply.Category, plainMsg.Category)
	assert.Equal(t, "bob replied on Budget 2025: https://news.test/budget?commentId=r-reader", plainMsg.Locals.Body)
	assert.Equal(t, "author", plainMsg.RecipientID)
}
