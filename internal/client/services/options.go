package services

import (
	"time"

	"github.com/dmitrijs2005/posclient/internal/client/notify"
	"github.com/dmitrijs2005/posclient/internal/logging"
)

type Option func(*Session)

func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithNotifier sets where session notices go. A notifier with a
// SetLanguage(string) method follows the language of the logged in user.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}
