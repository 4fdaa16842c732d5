package i18n

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrymomot/notifykit/pkg/logger"
)

var (
	namedParam      = regexp.MustCompile(`%\{([^}]+)\}`)
	positionalParam = regexp.MustCompile(`\{(\d+)\}`)
)

// Translator looks up message templates by language and dotted key.
type Translator struct {
	mu             sync.RWMutex
	translations   map[string]map[string]any
	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
}

// NewTranslator loads translations from adapter and returns a ready translator.
func NewTranslator(ctx context.Context, adapter Adapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}

	loaded, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}

	t.translations = make(map[string]map[string]any, len(loaded))
	for lang, tr := range loaded {
		norm := NormalizeLanguage(lang)
		if norm == "" {
			return nil, ErrEmptyLanguage
		}
		if tr == nil {
			return nil, errors.Join(ErrInvalidTranslations, fmt.Errorf("nil translations for %q", lang))
		}
		t.translations[norm] = tr
	}

	if len(t.translations) == 0 {
		t.logger.WarnContext(ctx, "no translations loaded")
	} else {
		t.logger.DebugContext(ctx, "translations loaded",
			slog.Any("languages", t.languages()),
			slog.String("default", t.defaultLang))
	}
	return t, nil
}

func (t *Translator) languages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// SupportedLanguages returns the loaded language codes in sorted order.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.languages()
}

// DefaultLanguage returns the language used when a lookup language is missing.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// HasTranslation reports whether key resolves to a string for lang,
// including base-language and default-language fallbacks.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.lookup(lang, key)
	return ok
}

// T translates key for lang and fills "%{name}" placeholders from
// key/value pairs in args. An odd trailing argument is ignored.
func (t *Translator) T(lang, key string, args ...string) string {
	tmpl, ok := t.resolve(lang, key)
	if !ok {
		return t.missing(lang, key, func(s string) string { return fillNamed(s, args) })
	}
	return fillNamed(tmpl, args)
}

// Tc is T with the language taken from ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// Td is T with an explicit default template used when key is missing.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	tmpl, ok := t.resolve(lang, key)
	if !ok {
		tmpl = defaultValue
	}
	return fillNamed(tmpl, args)
}

// P translates key for lang and replaces "{i}" with args[i].
// Indices without a matching argument are left as is.
func (t *Translator) P(lang, key string, args ...string) string {
	tmpl, ok := t.resolve(lang, key)
	if !ok {
		return t.missing(lang, key, func(s string) string { return fillPositional(s, args) })
	}
	return fillPositional(tmpl, args)
}

// Pc is P with the language taken from ctx.
func (t *Translator) Pc(ctx context.Context, key string, args ...string) string {
	return t.P(GetLocale(ctx), key, args...)
}

func (t *Translator) resolve(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lookup(lang, key)
}

func (t *Translator) missing(lang, key string, fill func(string) string) string {
	if t.missingLogMode {
		t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
	}
	if t.fallbackToKey {
		return fill(key)
	}
	return ""
}

// lookup tries lang, its base language, then the default language.
func (t *Translator) lookup(lang, key string) (string, bool) {
	candidates := make([]string, 0, 3)
	if norm := NormalizeLanguage(lang); norm != "" {
		candidates = append(candidates, norm, baseLanguage(norm))
	}
	candidates = append(candidates, t.defaultLang)

	for _, l := range candidates {
		m, ok := t.translations[l]
		if !ok {
			continue
		}
		if s, ok := stringValue(m, key); ok {
			return s, true
		}
	}
	return "", false
}

// stringValue walks the dotted key through nested maps.
func stringValue(m map[string]any, key string) (string, bool) {
	parts := strings.Split(key, ".")
	current := m
	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			switch s := v.(type) {
			case string:
				return s, true
			case fmt.Stringer:
				return s.String(), true
			default:
				return "", false
			}
		}
		switch next := v.(type) {
		case map[string]any:
			current = next
		case map[any]any:
			current = make(map[string]any, len(next))
			for k, val := range next {
				if ks, ok := k.(string); ok {
					current[ks] = val
				}
			}
		default:
			return "", false
		}
	}
	return "", false
}

func fillNamed(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return namedParam.ReplaceAllStringFunc(tmpl, func(match string) string {
		if v, ok := params[match[2:len(match)-1]]; ok {
			return v
		}
		return match
	})
}

func fillPositional(tmpl string, args []string) string {
	if len(args) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	return positionalParam.ReplaceAllStringFunc(tmpl, func(match string) string {
		i, err := strconv.Atoi(match[1 : len(match)-1])
		if err != nil || i >= len(args) {
			return match
		}
		return args[i]
	})
}
