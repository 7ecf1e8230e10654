package i18n

import (
	"context"
	"embed"
	"sort"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"clubxp/internal/ports/output"
	"clubxp/pkg/logger"
)

//go:embed active.*.toml
var localeFS embed.FS

var catalogs = []string{"active.en.toml", "active.fr.toml"}

var _ output.Translator = (*Translator)(nil)

// Translator renders notification messages from the embedded catalogs.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
	// defined holds the message ids of each loaded catalog, by language.
	defined map[string]map[output.MessageKey]struct{}
	log     logger.Logger
}

// NewTranslator loads the embedded catalogs and warns about notification
// keys a catalog lacks. An unparsable defaultLocale falls back to English.
func NewTranslator(defaultLocale string) *Translator {
	ctx := context.Background()
	log := logger.Named("i18n")
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		log.Warn(ctx, "unknown default locale, using en", logger.String("locale", defaultLocale))
		tag = language.English
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	t := &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
		defined:         make(map[string]map[output.MessageKey]struct{}, len(catalogs)),
		log:             log,
	}
	for _, file := range catalogs {
		mf, err := bundle.LoadMessageFileFS(localeFS, file)
		if err != nil {
			log.Error(ctx, "load message file", logger.String("file", file), logger.Error(err))
			continue
		}
		ids := make(map[output.MessageKey]struct{}, len(mf.Messages))
		for _, m := range mf.Messages {
			ids[output.MessageKey(m.ID)] = struct{}{}
		}
		t.defined[mf.Tag.String()] = ids
	}

	for lang, keys := range t.Missing(output.NotificationKeys...) {
		for _, key := range keys {
			log.Warn(ctx, "notification key missing from catalog",
				logger.String("language", lang),
				logger.String("key", string(key)),
			)
		}
	}
	return t
}

// Languages returns the languages of the loaded catalogs, sorted.
func (t *Translator) Languages() []string {
	out := make([]string, 0, len(t.defined))
	for lang := range t.defined {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Missing reports, per loaded language, which of keys its catalog does not
// define. Languages defining every key are omitted.
func (t *Translator) Missing(keys ...output.MessageKey) map[string][]output.MessageKey {
	missing := make(map[string][]output.MessageKey)
	for lang, ids := range t.defined {
		for _, key := range keys {
			if _, ok := ids[key]; !ok {
				missing[lang] = append(missing[lang], key)
			}
		}
	}
	return missing
}

// T renders key for locale, falling back to the default locale and then to
// the key itself.
func (t *Translator) T(locale string, key output.MessageKey, data map[string]any) string {
	if key == "" {
		return ""
	}

	languages := make([]string, 0, 2)
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, t.defaultLanguage.String())

	msg, err := i18n.NewLocalizer(t.bundle, languages...).Localize(&i18n.LocalizeConfig{
		MessageID:    string(key),
		TemplateData: data,
	})
	if err != nil {
		t.log.Debug(context.Background(), "localize failed",
			logger.String("key", string(key)),
			logger.Any("locales", languages),
			logger.Error(err),
		)
		return string(key)
	}
	return msg
}
