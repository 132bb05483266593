// Package notify delivers user-facing notices (the toast of the web client)
// through a pluggable Notifier, translated with a message catalog.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notice is a message key plus its arguments; the notifier localizes it.
type Notice struct {
	Level Level
	Key   string
	Args  []any
}

type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// Nop discards notices.
type Nop struct{}

func (Nop) Notify(context.Context, Notice) {}

// Console writes localized notices as "[level] text" lines.
type Console struct {
	mu      sync.Mutex
	w       io.Writer
	catalog *Catalog
	lang    string
}

func NewConsole(w io.Writer, catalog *Catalog) *Console {
	return &Console{w: w, catalog: catalog}
}

// SetLanguage switches the output language, usually to User.Lang after login.
func (c *Console) SetLanguage(lang string) {
	c.mu.Lock()
	c.lang = lang
	c.mu.Unlock()
}

func (c *Console) Notify(_ context.Context, n Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "[%s] %s\n", n.Level, c.catalog.Text(c.lang, n.Key, n.Args...))
}
