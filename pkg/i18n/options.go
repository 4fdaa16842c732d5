package i18n

import "log/slog"

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used when a lookup language has no entry.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if norm := NormalizeLanguage(lang); norm != "" {
			t.defaultLang = norm
		}
	}
}

// WithFallbackToKey controls whether a missing key is returned as is. Default is true.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) {
		t.fallbackToKey = fallback
	}
}

// WithLogger sets the logger for load and missing-key messages.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMissingTranslationsLogging logs a warning for every missing key.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) {
		t.missingLogMode = enabled
	}
}
