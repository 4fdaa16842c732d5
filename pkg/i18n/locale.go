package i18n

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no language is configured or set on the context.
const DefaultLanguage = "en"

type localeContextKey struct{}

// SetLocale stores the locale on the context.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the locale stored on the context or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	locale, _ := ctx.Value(localeContextKey{}).(string)
	if locale == "" {
		return DefaultLanguage
	}
	return locale
}

// NormalizeLanguage returns the canonical BCP 47 form of code.
// Codes that cannot be parsed are returned lower-cased and trimmed.
func NormalizeLanguage(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return strings.ToLower(code)
	}
	return tag.String()
}

// baseLanguage returns the primary language subtag of code, e.g. "en" for "en-US".
func baseLanguage(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		if i := strings.IndexAny(code, "-_"); i > 0 {
			return strings.ToLower(code[:i])
		}
		return code
	}
	base, _ := tag.Base()
	return base.String()
}
