package notifications_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/i18n"
	"github.com/dmitrymomot/notifykit/pkg/notifications"
	"github.com/dmitrymomot/notifykit/pkg/settings"
)

type payload struct {
	UserID string `json:"user_id"`
	Ref    string `json:"ref"`
}

func newEvent(t *testing.T, name, userID, ref string) events.Event {
	t.Helper()
	evt, err := events.New(name, payload{UserID: userID, Ref: ref})
	require.NoError(t, err)
	return evt
}

// stubHandler notifies the user named in the payload.
type stubHandler struct {
	category string
	event    string
	handle   func(ctx context.Context, evt events.Event) (*notifications.Notification, error)
	hydrate  func(ctx context.Context, category, ref string) ([]string, error)
}

func newStub(category, event string) *stubHandler {
	return &stubHandler{category: category, event: event}
}

func (h *stubHandler) Category() string { return h.category }
func (h *stubHandler) Event() string    { return h.event }

func (h *stubHandler) Handle(ctx context.Context, evt events.Event) (*notifications.Notification, error) {
	if h.handle != nil {
		return h.handle(ctx, evt)
	}
	var p payload
	if err := json.Unmarshal(evt.Payload, &p); err != nil {
		return nil, err
	}
	return &notifications.Notification{UserID: p.UserID, Date: evt.OccurredAt, Context: p.Ref}, nil
}

func (h *stubHandler) Hydrate(ctx context.Context, category, ref string) ([]string, error) {
	if h.hydrate != nil {
		return h.hydrate(ctx, category, ref)
	}
	return []string{"Headline " + ref, "https://news.test/a?commentId=" + ref}, nil
}

type supersedingStub struct {
	*stubHandler
	supersedes []string
}

func (h supersedingStub) SupersedesCategories() []string { return h.supersedes }

func superseding(category, event string, supersedes ...string) supersedingStub {
	return supersedingStub{stubHandler: newStub(category, event), supersedes: supersedes}
}

type mockIssuer struct {
	mock.Mock
}

func (m *mockIssuer) Issue(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

// recordingTransport keeps every message it was asked to send.
type recordingTransport struct {
	mu       sync.Mutex
	messages []notifications.Message
	err      error
	onSend   func(msg notifications.Message)
}

func (t *recordingTransport) Send(_ context.Context, msg notifications.Message) (string, error) {
	if t.onSend != nil {
		t.onSend(msg)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return "", t.err
	}
	t.messages = append(t.messages, msg)
	return "task-" + msg.RecipientID + "-" + msg.Category, nil
}

func (t *recordingTransport) sent() []notifications.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]notifications.Message(nil), t.messages...)
}

// logBuffer is a goroutine-safe log sink.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) count(substr string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Count(b.buf.String(), substr)
}

func newTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	cat := func(subject, body string) map[string]any {
		return map[string]any{"subject": subject, "body": body}
	}
	tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: map[string]map[string]any{
		"en": {
			"notifications": map[string]any{
				"categories": map[string]any{
					"featured":    cat("{0}: your comment was featured", "Your comment on {0} was featured: {1}"),
					"editorsPick": cat("{0}: editor's pick", "Editors picked your comment on {0}: {1}"),
					"reply":       cat("{0}: new reply", "New reply on {0}: {1}"),
					"staffReply":  cat("{0}: staff reply", "Staff replied on {0}: {1}"),
				},
			},
		},
	}})
	require.NoError(t, err)
	return tr
}

type fixture struct {
	registry  *notifications.Registry
	settings  *settingsStub
	issuer    *mockIssuer
	transport *recordingTransport
	logs      *logBuffer
	manager   *notifications.Manager
}

type settingsStub struct {
	mu     sync.Mutex
	values map[string]string
	err    error
}

func (s *settingsStub) Load(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	v, ok := s.values[key]
	if !ok {
		return "", errSettingNotFound
	}
	return v, nil
}

func newFixture(t *testing.T, handlers ...notifications.Handler) *fixture {
	t.Helper()

	f := &fixture{
		registry:  notifications.NewRegistry(),
		settings:  &settingsStub{values: map[string]string{"organizationName": "Acme"}},
		issuer:    &mockIssuer{},
		transport: &recordingTransport{},
		logs:      &logBuffer{},
	}
	require.NoError(t, f.registry.Register(handlers...))
	f.issuer.On("Issue", mock.Anything).Return("unsub-token", nil).Maybe()

	log := slog.New(slog.NewJSONHandler(f.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f.manager = notifications.NewManager(f.registry, f.settings, f.issuer, newTranslator(t), f.transport,
		notifications.WithLogger(log),
	)
	return f
}

var errSettingNotFound = settings.ErrSettingNotFound
