package notifications

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notifykit/pkg/async"
	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/i18n"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/settings"
)

// Manager dispatches events to handlers and delivers their notifications.
type Manager struct {
	registry   *Registry
	settings   settings.Store
	tokens     TokenIssuer
	translator Translator
	transport  Transport

	logger     *slog.Logger
	namespace  string
	templateID string
	locale     string
}

// NewManager creates a manager over a populated registry.
func NewManager(
	registry *Registry,
	store settings.Store,
	tokens TokenIssuer,
	translator Translator,
	transport Transport,
	opts ...ManagerOption,
) *Manager {
	m := &Manager{
		registry:   registry,
		settings:   store,
		tokens:     tokens,
		translator: translator,
		transport:  transport,
		logger:     slog.Default(),
		namespace:  DefaultNamespace,
		templateID: DefaultTemplate,
		locale:     i18n.DefaultLanguage,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Attach subscribes one listener per registered event name on src and
// freezes the registry.
func (m *Manager) Attach(src events.Source) error {
	if src == nil {
		return ErrNilSource
	}
	if err := m.registry.seal(); err != nil {
		return err
	}

	names := m.registry.Events()
	for _, name := range names {
		src.On(name, func(ctx context.Context, evt events.Event) {
			m.Dispatch(ctx, evt)
		})
	}

	m.logger.Debug("notification handlers attached",
		logger.Component("notifications"),
		slog.Int("handlers", m.registry.Len()),
		slog.Any("events", names),
	)
	return nil
}

// Report summarizes one dispatch.
type Report struct {
	DispatchID string
	Candidates []Candidate
	Survivors  []Candidate
	Delivered  int
	Failed     int
}

// Dispatch evaluates every handler subscribed to evt, filters superseded
// candidates and delivers the rest. It returns once all deliveries finished.
// Failures are logged; none of them escapes.
func (m *Manager) Dispatch(ctx context.Context, evt events.Event) Report {
	report := Report{DispatchID: uuid.NewString()}

	group := m.registry.forEvent(evt.Name)
	if len(group) == 0 {
		return report
	}

	ctx = SystemContext(ctx, report.DispatchID, m.locale)
	log := m.logger.With(logger.Event(evt.Name))

	report.Candidates = m.evaluate(ctx, log, group, evt)
	report.Survivors = FilterSuperseded(report.Candidates)
	if dropped := len(report.Candidates) - len(report.Survivors); dropped > 0 {
		log.DebugContext(ctx, "superseded notifications dropped", slog.Int("dropped", dropped))
	}
	if len(report.Survivors) == 0 {
		return report
	}

	futures := make([]*async.Future[string], len(report.Survivors))
	for i, c := range report.Survivors {
		futures[i] = async.Async(ctx, c, func(ctx context.Context, c Candidate) (string, error) {
			return m.Send(ctx, c.Handler, c.Notification)
		})
	}
	for i, res := range async.AllSettled(futures...) {
		if res.OK() {
			report.Delivered++
			continue
		}
		report.Failed++
		if errors.Is(res.Err, async.ErrPanic) {
			log.ErrorContext(ctx, "notification delivery panicked",
				logger.Category(report.Survivors[i].Category()),
				logger.UserID(report.Survivors[i].UserID),
				logger.Error(res.Err),
			)
		}
	}
	return report
}

// evaluate runs every handler in group concurrently and collects their
// notifications once all of them settled.
func (m *Manager) evaluate(ctx context.Context, log *slog.Logger, group []entry, evt events.Event) []Candidate {
	futures := make([]*async.Future[*Notification], len(group))
	for i, e := range group {
		futures[i] = async.Async(ctx, e.handler, func(ctx context.Context, h Handler) (*Notification, error) {
			return h.Handle(ctx, evt)
		})
	}

	var out []Candidate
	for i, res := range async.AllSettled(futures...) {
		h := group[i].handler
		switch {
		case res.Err != nil:
			log.ErrorContext(ctx, "notification handler failed",
				logger.Category(h.Category()),
				logger.Error(res.Err),
			)
		case res.Value == nil:
			log.DebugContext(ctx, "handler produced no notification", logger.Category(h.Category()))
		default:
			out = append(out, Candidate{Notification: *res.Value, Handler: h, Rank: group[i].rank})
		}
	}
	return out
}

// Send composes and delivers one notification and returns the transport
// task id. Every failure is logged here before it is returned.
func (m *Manager) Send(ctx context.Context, h Handler, n Notification) (string, error) {
	category := h.Category()
	log := m.logger.With(logger.Category(category), logger.UserID(n.UserID))
	start := time.Now()

	if n.UserID == "" {
		log.DebugContext(ctx, "notification has no recipient")
		return "", ErrMissingRecipient
	}

	org, err := m.settings.Load(ctx, settings.KeyOrganizationName)
	switch {
	case errors.Is(err, settings.ErrSettingNotFound) || (err == nil && org == ""):
		log.DebugContext(ctx, "organization name is not set, skipping notification",
			logger.Setting(settings.KeyOrganizationName))
		return "", ErrOrganizationNameMissing
	case err != nil:
		log.ErrorContext(ctx, "failed to load organization name", logger.Error(err))
		return "", errors.Join(ErrSettingsLookupFailed, err)
	}

	token, err := m.tokens.Issue(n.UserID)
	if err != nil {
		log.ErrorContext(ctx, "failed to issue unsubscribe token", logger.Error(err))
		return "", errors.Join(ErrTokenIssueFailed, err)
	}

	subject := m.translator.Pc(ctx, m.key(category, "subject"), org)

	values, err := h.Hydrate(ctx, category, n.Context)
	if err != nil {
		log.ErrorContext(ctx, "failed to hydrate notification", logger.Error(err))
		return "", errors.Join(ErrHydrateFailed, err)
	}
	body := m.translator.Pc(ctx, m.key(category, "body"), values...)

	taskID, err := m.transport.Send(ctx, Message{
		TemplateID:  m.templateID,
		Category:    category,
		RecipientID: n.UserID,
		Subject:     subject,
		Locals: Locals{
			Body:             body,
			OrganizationName: org,
			UnsubscribeToken: token,
		},
	})
	if err != nil {
		log.ErrorContext(ctx, "failed to send notification", logger.Error(err))
		return "", errors.Join(ErrTransportFailed, err)
	}

	log.DebugContext(ctx, "notification sent", logger.TaskID(taskID), logger.Duration(time.Since(start)))
	return taskID, nil
}

func (m *Manager) key(category, part string) string {
	return m.namespace + ".categories." + category + "." + part
}
