// Package i18n resolves localized message templates by language and dotted
// key and fills them with arguments.
//
// Translations are loaded once through an Adapter (an in-memory map or YAML
// and JSON files from any fs.FS, typically an embed.FS) into a nested map
// keyed by language. Lookups walk the dotted key through that map.
//
// Two placeholder styles are supported:
//
//   - named placeholders "%{name}" filled by T, Tc and Td from key/value pairs
//   - positional placeholders "{0}", "{1}" filled by P and Pc from an ordered list
//
// Placeholders without a matching argument stay in the output unchanged.
//
// # Language resolution
//
// Language codes are normalized with golang.org/x/text/language, so "en_US",
// "EN-us" and "en-US" resolve to the same entry. A lookup for a regional
// variant falls back to its base language and then to the translator's
// default language.
//
// # Usage
//
//	//go:embed translations
//	var files embed.FS
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(files, "translations"),
//		i18n.WithDefaultLanguage("en"),
//		i18n.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//
//	subject := tr.Pc(i18n.SetLocale(ctx, "en"), "notifications.categories.reply.subject", "Acme")
//
// The Translator is safe for concurrent use.
package i18n
