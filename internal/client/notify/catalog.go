package notify

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	KeyLoginRequired = "Session expired, please log in again"
	KeyLoginSuccess  = "Welcome, %s"
	KeyLoginFailed   = "Failed login: %s"
	KeyBadLogin      = "Wrong user name or password"
	KeyUserDisabled  = "User account is disabled"
	KeyRequestFailed = "Request failed: %s"
	KeyLoggedOut     = "Logged out"
)

// supported is ordered: the first entry is the default language.
var supported = []language.Tag{language.English, language.Russian}

var translations = map[language.Tag]map[string]string{
	language.English: {
		KeyLoginRequired: KeyLoginRequired,
		KeyLoginSuccess:  KeyLoginSuccess,
		KeyLoginFailed:   KeyLoginFailed,
		KeyBadLogin:      KeyBadLogin,
		KeyUserDisabled:  KeyUserDisabled,
		KeyRequestFailed: KeyRequestFailed,
		KeyLoggedOut:     KeyLoggedOut,
	},
	language.Russian: {
		KeyLoginRequired: "Сессия истекла, войдите снова",
		KeyLoginSuccess:  "Добро пожаловать, %s",
		KeyLoginFailed:   "Ошибка входа: %s",
		KeyBadLogin:      "Неверное имя пользователя или пароль",
		KeyUserDisabled:  "Учётная запись отключена",
		KeyRequestFailed: "Ошибка запроса: %s",
		KeyLoggedOut:     "Вы вышли из системы",
	},
}

// Catalog translates message keys. Unknown languages fall back to English.
type Catalog struct {
	cat     *catalog.Builder
	matcher language.Matcher
}

// NewCatalog builds the catalog from the built-in translations. A message
// that fails to register panics.
func NewCatalog() *Catalog {
	b, err := buildCatalog(translations)
	if err != nil {
		panic(err)
	}
	return &Catalog{cat: b, matcher: language.NewMatcher(supported)}
}

func buildCatalog(msgs map[language.Tag]map[string]string) (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, m := range msgs {
		for key, msg := range m {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("catalog %s %q: %w", tag, key, err)
			}
		}
	}
	return b, nil
}

// Text renders key in lang ("ru", "en-GB", ...).
func (c *Catalog) Text(lang string, key string, args ...any) string {
	_, i := language.MatchStrings(c.matcher, lang)
	return message.NewPrinter(supported[i], message.Catalog(c.cat)).Sprintf(key, args...)
}
