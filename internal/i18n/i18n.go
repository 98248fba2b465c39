package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	bundleErr  error

	mu        sync.RWMutex
	localizer *i18n.Localizer
)

func loadBundle() (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("json", json.Unmarshal)

		entries, err := localeFS.ReadDir("locales")
		if err != nil {
			bundleErr = fmt.Errorf("reading embedded locales: %w", err)
			return
		}
		for _, entry := range entries {
			if _, err := b.LoadMessageFileFS(localeFS, "locales/"+entry.Name()); err != nil {
				bundleErr = fmt.Errorf("loading locale %s: %w", entry.Name(), err)
				return
			}
		}
		bundle = b
	})
	return bundle, bundleErr
}

// Init builds a localizer for locale and makes it the default used by T.
// An empty locale is detected from LC_ALL, LC_MESSAGES and LANG.
func Init(locale string) (*i18n.Localizer, error) {
	loc, err := NewLocalizer(locale)
	if err != nil {
		return nil, err
	}
	mu.Lock()
	localizer = loc
	mu.Unlock()
	return loc, nil
}

// NewLocalizer builds a localizer for locale without touching the default.
func NewLocalizer(locale string) (*i18n.Localizer, error) {
	b, err := loadBundle()
	if err != nil {
		return nil, err
	}
	if locale == "" {
		locale = detectSystemLocale()
	}
	return i18n.NewLocalizer(b, normalizeLocale(locale), language.English.String()), nil
}

// T translates messageID with the default localizer. Unknown ids are
// returned as they are.
func T(messageID string) string {
	mu.RLock()
	loc := localizer
	mu.RUnlock()

	if loc == nil {
		var err error
		if loc, err = Init(""); err != nil {
			return messageID
		}
	}
	return Localize(loc, messageID)
}

// Localize translates messageID with loc. A message missing from the
// requested language comes back in English; an unknown id comes back as is.
func Localize(loc *i18n.Localizer, messageID string) string {
	msg, _ := loc.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if msg == "" {
		return messageID
	}
	return msg
}

func detectSystemLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" && v != "C" && v != "POSIX" {
			return v
		}
	}
	return language.English.String()
}

// normalizeLocale turns POSIX values such as "zh_CN.UTF-8" into BCP 47.
func normalizeLocale(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English.String()
	}
	return tag.String()
}
