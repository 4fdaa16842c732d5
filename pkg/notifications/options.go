package notifications

import "log/slog"

// DefaultNamespace prefixes every translation key.
const DefaultNamespace = "notifications"

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger for dispatch and send failures.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithNamespace sets the translation key prefix.
func WithNamespace(ns string) ManagerOption {
	return func(m *Manager) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

// WithTemplate sets the transport template id.
func WithTemplate(id string) ManagerOption {
	return func(m *Manager) {
		if id != "" {
			m.templateID = id
		}
	}
}

// WithLocale sets the locale dispatches translate into.
func WithLocale(locale string) ManagerOption {
	return func(m *Manager) {
		if locale != "" {
			m.locale = locale
		}
	}
}
