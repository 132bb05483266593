package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Text(t *testing.T) {
	c := NewCatalog()

	assert.Equal(t, "Failed login: bad password", c.Text("en", KeyLoginFailed, "bad password"))
	assert.Equal(t, "Ошибка входа: x", c.Text("ru", KeyLoginFailed, "x"))
	assert.Equal(t, "Сессия истекла, войдите снова", c.Text("ru-RU", KeyLoginRequired))
	assert.Equal(t, "User account is disabled", c.Text("", KeyUserDisabled), "empty language falls back to English")
	assert.Equal(t, "Logged out", c.Text("xx", KeyLoggedOut))
}

func TestBuildCatalog_AllTranslationsRegister(t *testing.T) {
	assert.NotPanics(t, func() { NewCatalog() })

	b, err := buildCatalog(translations)
	require.NoError(t, err)
	require.NotNil(t, b)

	for tag, msgs := range translations {
		assert.Len(t, msgs, len(translations[supported[0]]), "%s has every key", tag)
	}
	assert.Equal(t, "Неверное имя пользователя или пароль", NewCatalog().Text("ru", KeyBadLogin))
}

func TestConsole_Notify(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, NewCatalog())
	ctx := context.Background()

	c.Notify(ctx, Notice{Level: LevelError, Key: KeyRequestFailed, Args: []any{"Not Found"}})
	c.SetLanguage("ru")
	c.Notify(ctx, Notice{Level: LevelInfo, Key: KeyLoggedOut})

	assert.Equal(t, "[error] Request failed: Not Found\n[info] Вы вышли из системы\n", buf.String())
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop{}.Notify(context.Background(), Notice{}) })
}
