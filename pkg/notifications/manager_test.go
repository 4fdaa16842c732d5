package notifications_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/i18n"
	"github.com/dmitrymomot/notifykit/pkg/notifications"
)

func TestManager_Dispatch_SupersededCategoryIsNotDelivered(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		newStub("featured", "itemFeatured"),
		superseding("editorsPick", "itemFeatured", "featured"),
	)

	report := f.manager.Dispatch(context.Background(), newEvent(t, "itemFeatured", "u1", "c1"))

	assert.Len(t, report.Candidates, 2)
	assert.Equal(t, []string{"editorsPick"}, categories(report.Survivors))
	assert.Equal(t, 1, report.Delivered)

	sent := f.transport.sent()
	require.Len(t, sent, 1)
	msg := sent[0]
	assert.Equal(t, "editorsPick", msg.Category)
	assert.Equal(t, "u1", msg.RecipientID)
	assert.Equal(t, notifications.DefaultTemplate, msg.TemplateID)
	assert.Equal(t, "Acme: editor's pick", msg.Subject)
	assert.Equal(t, "Editors picked your comment on Headline c1: https://news.test/a?commentId=c1", msg.Locals.Body)
	assert.Equal(t, "Acme", msg.Locals.OrganizationName)
	assert.Equal(t, "unsub-token", msg.Locals.UnsubscribeToken)
}

func TestManager_Dispatch_MissingOrganizationName(t *testing.T) {
	t.Parallel()

	f := newFixture(t, newStub("featured", "itemFeatured"))
	f.settings.values = map[string]string{}

	var report notifications.Report
	assert.NotPanics(t, func() {
		report = f.manager.Dispatch(context.Background(), newEvent(t, "itemFeatured", "u1", "c1"))
	})

	assert.Empty(t, f.transport.sent())
	assert.Equal(t, 0, report.Delivered)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, f.logs.count("organization name is not set"))
	assert.Equal(t, 0, f.logs.count(`"level":"ERROR"`))
	f.issuer.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestManager_Send_SubjectIsDeterministic(t *testing.T) {
	t.Parallel()

	h := newStub("featured", "itemFeatured")
	f := newFixture(t, h)
	ctx := i18n.SetLocale(context.Background(), "en")
	n := notifications.Notification{UserID: "u1", Context: "c1"}

	for range 3 {
		_, err := f.manager.Send(ctx, h, n)
		require.NoError(t, err)
	}

	sent := f.transport.sent()
	require.Len(t, sent, 3)
	for _, msg := range sent {
		assert.Equal(t, "Acme: your comment was featured", msg.Subject)
		assert.Equal(t, sent[0].Locals.Body, msg.Locals.Body)
	}
}

func TestManager_Dispatch_FailingHandlerEqualsNoNotification(t *testing.T) {
	t.Parallel()

	failing := newStub("failing", "evt")
	failing.handle = func(context.Context, events.Event) (*notifications.Notification, error) {
		return nil, errors.New("query failed")
	}
	panicking := newStub("panicking", "evt")
	panicking.handle = func(context.Context, events.Event) (*notifications.Notification, error) {
		panic("boom")
	}
	silent := newStub("silent", "evt")
	silent.handle = func(context.Context, events.Event) (*notifications.Notification, error) {
		return nil, nil
	}
	ok := newStub("ok", "evt")

	f := newFixture(t, failing, panicking, silent, ok)
	report := f.manager.Dispatch(context.Background(), newEvent(t, "evt", "u1", "c1"))

	assert.Equal(t, []string{"ok"}, categories(report.Candidates))
	assert.Equal(t, 1, report.Delivered)
	require.Len(t, f.transport.sent(), 1)
	assert.Equal(t, "ok", f.transport.sent()[0].Category)
	assert.Equal(t, 2, f.logs.count("notification handler failed"))
}

func TestManager_Dispatch_NoHandlers(t *testing.T) {
	t.Parallel()

	f := newFixture(t, newStub("featured", "itemFeatured"))
	report := f.manager.Dispatch(context.Background(), newEvent(t, "unknown", "u1", "c1"))

	assert.NotEmpty(t, report.DispatchID)
	assert.Empty(t, report.Candidates)
	assert.Empty(t, f.transport.sent())
}

func TestManager_Dispatch_DeliveryWaitsForAllEvaluations(t *testing.T) {
	t.Parallel()

	var slowDone atomic.Bool
	slow := newStub("slow", "evt")
	slow.handle = func(context.Context, events.Event) (*notifications.Notification, error) {
		time.Sleep(50 * time.Millisecond)
		slowDone.Store(true)
		return nil, nil
	}
	fast := newStub("fast", "evt")

	f := newFixture(t, slow, fast)
	var deliveredEarly atomic.Bool
	f.transport.onSend = func(notifications.Message) {
		if !slowDone.Load() {
			deliveredEarly.Store(true)
		}
	}

	report := f.manager.Dispatch(context.Background(), newEvent(t, "evt", "u1", "c1"))
	assert.Equal(t, 1, report.Delivered)
	assert.False(t, deliveredEarly.Load())
}

func TestManager_Dispatch_ConcurrentOccurrencesAreIndependent(t *testing.T) {
	t.Parallel()

	f := newFixture(t, newStub("reply", "commentAdded"))
	f.transport.onSend = func(msg notifications.Message) {
		if msg.RecipientID == "slow-user" {
			time.Sleep(100 * time.Millisecond)
		}
	}

	occurrences := []events.Event{
		newEvent(t, "commentAdded", "slow-user", "c-slow"),
		newEvent(t, "commentAdded", "fast-user", "c-fast"),
	}
	var wg sync.WaitGroup
	for _, evt := range occurrences {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.manager.Dispatch(context.Background(), evt)
		}()
	}
	wg.Wait()

	sent := f.transport.sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "fast-user", sent[0].RecipientID, "fast recipient must not wait for the slow one")

	byUser := map[string]notifications.Message{}
	for _, msg := range sent {
		byUser[msg.RecipientID] = msg
	}
	assert.Contains(t, byUser["slow-user"].Locals.Body, "c-slow")
	assert.Contains(t, byUser["fast-user"].Locals.Body, "c-fast")
	assert.NotContains(t, byUser["fast-user"].Locals.Body, "c-slow")
}

func TestManager_Dispatch_DeliveryFailureIsIsolated(t *testing.T) {
	t.Parallel()

	broken := newStub("broken", "evt")
	broken.hydrate = func(context.Context, string, string) ([]string, error) {
		return nil, errors.New("asset not found")
	}
	panicky := newStub("panicky", "evt")
	panicky.hydrate = func(context.Context, string, string) ([]string, error) {
		panic("hydrate exploded")
	}
	healthy := newStub("featured", "evt")

	f := newFixture(t, broken, panicky, healthy)
	report := f.manager.Dispatch(context.Background(), newEvent(t, "evt", "u1", "c1"))

	assert.Equal(t, 1, report.Delivered)
	assert.Equal(t, 2, report.Failed)
	require.Len(t, f.transport.sent(), 1)
	assert.Equal(t, "featured", f.transport.sent()[0].Category)
	assert.Equal(t, 1, f.logs.count("notification delivery panicked"))
}

func TestManager_Dispatch_IgnoresCallerCancellation(t *testing.T) {
	t.Parallel()

	var (
		mu         sync.Mutex
		actor      string
		dispatchID string
	)
	h := newStub("featured", "evt")
	h.handle = func(ctx context.Context, evt events.Event) (*notifications.Notification, error) {
		mu.Lock()
		actor, _ = notifications.Actor(ctx)
		dispatchID = notifications.DispatchID(ctx)
		mu.Unlock()
		return &notifications.Notification{UserID: "u1", Context: "c1"}, nil
	}

	f := newFixture(t, h)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := f.manager.Dispatch(ctx, newEvent(t, "evt", "u1", "c1"))
	assert.Equal(t, 1, report.Delivered)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, notifications.SystemActor, actor)
	assert.Equal(t, report.DispatchID, dispatchID)
}

func TestManager_Send_Errors(t *testing.T) {
	t.Parallel()

	n := notifications.Notification{UserID: "u1", Context: "c1"}

	t.Run("missing recipient", func(t *testing.T) {
		t.Parallel()
		h := newStub("featured", "evt")
		f := newFixture(t, h)
		_, err := f.manager.Send(context.Background(), h, notifications.Notification{})
		require.ErrorIs(t, err, notifications.ErrMissingRecipient)
	})

	t.Run("settings failure", func(t *testing.T) {
		t.Parallel()
		h := newStub("featured", "evt")
		f := newFixture(t, h)
		f.settings.err = errors.New("redis down")
		_, err := f.manager.Send(context.Background(), h, n)
		require.ErrorIs(t, err, notifications.ErrSettingsLookupFailed)
		assert.Empty(t, f.transport.sent())
	})

	t.Run("token failure", func(t *testing.T) {
		t.Parallel()
		h := newStub("featured", "evt")
		f := newFixture(t, h)
		f.issuer.ExpectedCalls = nil
		f.issuer.On("Issue", "u1").Return("", errors.New("no key"))
		_, err := f.manager.Send(context.Background(), h, n)
		require.ErrorIs(t, err, notifications.ErrTokenIssueFailed)
		assert.Empty(t, f.transport.sent())
	})

	t.Run("hydrate failure", func(t *testing.T) {
		t.Parallel()
		h := newStub("featured", "evt")
		h.hydrate = func(context.Context, string, string) ([]string, error) { return nil, errors.New("gone") }
		f := newFixture(t, h)
		_, err := f.manager.Send(context.Background(), h, n)
		require.ErrorIs(t, err, notifications.ErrHydrateFailed)
		assert.Empty(t, f.transport.sent())
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()
		h := newStub("featured", "evt")
		f := newFixture(t, h)
		f.transport.err = errors.New("postmark 500")
		_, err := f.manager.Send(context.Background(), h, n)
		require.ErrorIs(t, err, notifications.ErrTransportFailed)
		assert.Equal(t, 1, f.logs.count("failed to send notification"))
	})

	t.Run("success returns task id", func(t *testing.T) {
		t.Parallel()
		h := newStub("featured", "evt")
		f := newFixture(t, h)
		id, err := f.manager.Send(context.Background(), h, n)
		require.NoError(t, err)
		assert.Equal(t, "task-u1-featured", id)
		assert.Equal(t, 1, f.logs.count("notification sent"))
	})
}

func TestManager_AttachToMemoryBus(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		newStub("featured", "commentFeatured"),
		newStub("reply", "commentAdded"),
	)
	bus := events.NewMemoryBus()
	require.ErrorIs(t, f.manager.Attach(nil), notifications.ErrNilSource)
	require.NoError(t, f.manager.Attach(bus))

	assert.Equal(t, []string{"commentAdded", "commentFeatured"}, bus.Names())

	require.NoError(t, bus.Publish(context.Background(), "commentFeatured", payload{UserID: "u1", Ref: "c1"}))
	require.NoError(t, bus.Publish(context.Background(), "somethingElse", payload{UserID: "u2", Ref: "c2"}))

	sent := f.transport.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "featured", sent[0].Category)
	assert.Equal(t, "u1", sent[0].RecipientID)
}

func TestManager_Options(t *testing.T) {
	t.Parallel()

	h := newStub("featured", "evt")
	reg := notifications.NewRegistry()
	require.NoError(t, reg.Register(h))

	tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: map[string]map[string]any{
		"de": {"mail": map[string]any{"categories": map[string]any{"featured": map[string]any{
			"subject": "{0}: hervorgehoben",
			"body":    "{0}",
		}}}},
	}})
	require.NoError(t, err)

	issuer := &mockIssuer{}
	issuer.On("Issue", "u1").Return("tok", nil)
	transport := &recordingTransport{}
	m := notifications.NewManager(reg,
		&settingsStub{values: map[string]string{"organizationName": "Acme"}},
		issuer, tr, transport,
		notifications.WithNamespace("mail"),
		notifications.WithTemplate("digest"),
		notifications.WithLocale("de"),
	)

	report := m.Dispatch(context.Background(), newEvent(t, "evt", "u1", "c1"))
	require.Equal(t, 1, report.Delivered)

	msg := transport.sent()[0]
	assert.Equal(t, "digest", msg.TemplateID)
	assert.Equal(t, "Acme: hervorgehoben", msg.Subject)
	assert.Equal(t, "Headline c1", msg.Locals.Body)
}
