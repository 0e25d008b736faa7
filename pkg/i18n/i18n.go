// Package i18n localizes user-facing messages. Message IDs are error codes;
// the English catalog holds the canonical API messages.
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	mu            sync.RWMutex
	bundle        *i18n.Bundle
	matcher       language.Matcher
	defaultLocale = "en"
)

type ctxKey struct{}

// Init loads every embedded locale file and sets the default locale.
func Init(defLocale string) error {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return fmt.Errorf("i18n: read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", e.Name(), err)
		}
		if _, err := b.ParseMessageFileBytes(data, e.Name()); err != nil {
			return fmt.Errorf("i18n: parse %s: %w", e.Name(), err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	bundle = b
	matcher = language.NewMatcher(b.LanguageTags())
	if defLocale != "" {
		defaultLocale = defLocale
	}
	return nil
}

func current() (*i18n.Bundle, language.Matcher) {
	mu.RLock()
	b, m := bundle, matcher
	mu.RUnlock()
	if b != nil {
		return b, m
	}
	if err := Init(""); err != nil {
		panic(err)
	}
	return current()
}

// Negotiate picks the best supported locale for an Accept-Language header.
func Negotiate(acceptLanguage string) string {
	if acceptLanguage == "" {
		return DefaultLocale()
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale()
	}
	_, m := current()
	_, idx, conf := m.Match(tags...)
	if conf == language.No {
		return DefaultLocale()
	}
	b, _ := current()
	base, _ := b.LanguageTags()[idx].Base()
	return base.String()
}

func DefaultLocale() string {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLocale
}

// WithLocale returns a new context carrying the given locale string (e.g. "id", "en").
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxKey{}, locale)
}

// LocaleFromContext returns the request locale, or the default locale.
func LocaleFromContext(ctx context.Context) string {
	if ctx != nil {
		if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
			return v
		}
	}
	return DefaultLocale()
}

// T translates messageID for the context locale. fallback is returned
// when no catalog knows the ID.
func T(ctx context.Context, messageID, fallback string, templateData ...map[string]any) string {
	b, _ := current()
	l := i18n.NewLocalizer(b, LocaleFromContext(ctx), DefaultLocale())

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if fallback != "" {
		cfg.DefaultMessage = &i18n.Message{ID: messageID, Other: fallback}
	}
	if len(templateData) > 0 && templateData[0] != nil {
		cfg.TemplateData = templateData[0]
	}

	msg, err := l.Localize(cfg)
	if err != nil || msg == "" {
		if fallback != "" {
			return fallback
		}
		return messageID
	}
	return msg
}
