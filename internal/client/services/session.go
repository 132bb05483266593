// Package services contains the application services of the POS client.
// This file defines the session coordinator: login, token verification,
// and keeping the in-memory session, the auth header, and local storage in
// step with each other.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/posclient/internal/client/client"
	"github.com/dmitrijs2005/posclient/internal/client/models"
	"github.com/dmitrijs2005/posclient/internal/client/notify"
	"github.com/dmitrijs2005/posclient/internal/client/tokens"
	"github.com/dmitrijs2005/posclient/internal/logging"
)

const (
	authResource = "Auth"
	userResource = "User"
)

// API is the part of the HTTP client the session drives.
type API interface {
	SetAuthHeader(ctx context.Context, token string)
	ClearAuthHeader()
	Get(ctx context.Context, resource string) (*client.Response, error)
	Post(ctx context.Context, resource string, body any) (*client.Response, error)
}

// SessionStore persists the token and the user record.
type SessionStore interface {
	GetToken(ctx context.Context) (string, error)
	ParseTokenData(ctx context.Context, token string) *tokens.Claims
	SaveSession(ctx context.Context, token string, user *models.User) error
	ClearSession(ctx context.Context) error
	LoadUser(ctx context.Context) (*models.User, error)
}

type languageSetter interface {
	SetLanguage(lang string)
}

type authData struct {
	Token string `json:"token"`
}

type loginAttemptKey struct{}

// inLogin reports whether ctx belongs to a Login call.
func inLogin(ctx context.Context) bool {
	v, _ := ctx.Value(loginAttemptKey{}).(bool)
	return v
}

// Session is the session coordinator. Each state transition is atomic;
// Login and SetUser as a whole are not, and the lock is never held across a
// network call so that the unauthorized hook can purge during one.
type Session struct {
	api      API
	store    SessionStore
	logger   logging.Logger
	notifier notify.Notifier
	now      func() time.Time

	mu            sync.RWMutex
	authenticated bool
	user          *models.User
}

// NewSession starts authenticated when a token is persisted. The token is not
// checked here; call VerifyAuth for that.
func NewSession(ctx context.Context, api API, store SessionStore, opts ...Option) *Session {
	s := &Session{
		api:      api,
		store:    store,
		logger:   logging.Discard(),
		notifier: notify.Nop{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	_, err := store.GetToken(ctx)
	if err != nil && !errors.Is(err, tokens.ErrTokenNotFound) {
		s.logger.Error(ctx, "failed to read stored token", "error", err)
	}
	s.authenticated = err == nil
	return s
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// User returns a copy of the in-memory user, or nil.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAdmin
}

// StoredUser returns the user record kept in local storage.
func (s *Session) StoredUser(ctx context.Context) (*models.User, error) {
	return s.store.LoadUser(ctx)
}

// VerifyAuth checks the persisted token. A missing, undecodable or expired
// token (or one without exp) purges the session and yields false. A valid one
// is installed as the auth header and the stored user is restored into
// memory if none is loaded yet.
func (s *Session) VerifyAuth(ctx context.Context) bool {
	token, err := s.store.GetToken(ctx)
	if err != nil {
		if !errors.Is(err, tokens.ErrTokenNotFound) {
			s.logger.Error(ctx, "failed to read stored token", "error", err)
		}
		s.purge(ctx)
		return false
	}

	claims := s.store.ParseTokenData(ctx, token)
	if claims == nil {
		s.purge(ctx)
		return false
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(s.now()) {
		s.logger.Info(ctx, "stored token expired", "user", claims.UniqueName)
		s.purge(ctx)
		return false
	}

	s.api.SetAuthHeader(ctx, token)

	s.mu.Lock()
	s.authenticated = true
	restore := s.user == nil
	s.mu.Unlock()

	if restore {
		u, err := s.store.LoadUser(ctx)
		switch {
		case err == nil:
			s.mu.Lock()
			s.user = u
			s.mu.Unlock()
			s.setLanguage(u.Lang)
		case !errors.Is(err, tokens.ErrUserNotFound):
			s.logger.Warn(ctx, "failed to restore stored user", "error", err)
		}
	}
	return true
}

// Login posts creds to Auth and, on success, continues with SetUser.
func (s *Session) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	ctx = context.WithValue(ctx, loginAttemptKey{}, true)
	resp, err := s.api.Post(ctx, authResource, creds)
	if err != nil {
		return nil, loginFailure(ErrLoginFailed, err)
	}

	env, err := resp.Envelope()
	if err != nil {
		return nil, &LoginError{Kind: ErrLoginFailed, Err: err}
	}
	if !env.Success {
		return nil, &LoginError{Kind: ErrLoginFailed, Message: env.ErrorMessage}
	}

	var auth authData
	if err := env.First(&auth); err != nil {
		return nil, &LoginError{Kind: ErrLoginFailed, Err: err}
	}
	if auth.Token == "" {
		return nil, &LoginError{Kind: ErrLoginFailed, Err: tokens.ErrInvalidToken}
	}

	return s.SetUser(ctx, auth.Token)
}

// SetUser resolves the user behind token and, if the user is enabled, makes
// it the session user. On any failure the session keeps its previous state
// and the previous auth header is restored.
func (s *Session) SetUser(ctx context.Context, token string) (*models.User, error) {
	claims := s.store.ParseTokenData(ctx, token)
	if claims == nil || claims.UserID == 0 {
		return nil, &LoginError{Kind: ErrLoginFailed, Err: tokens.ErrInvalidToken}
	}

	s.api.SetAuthHeader(ctx, token)

	user, err := s.fetchUser(ctx, int64(claims.UserID))
	if err != nil {
		s.restoreHeader(ctx)
		return nil, err
	}
	if !user.IsEnabled() {
		s.restoreHeader(ctx)
		return nil, &LoginError{Kind: ErrUserDisabled}
	}

	if err := s.SetAuth(ctx, token, user); err != nil {
		s.restoreHeader(ctx)
		return nil, &LoginError{Kind: ErrLoginFailed, Err: err}
	}
	return user, nil
}

func (s *Session) fetchUser(ctx context.Context, id int64) (*models.User, error) {
	resp, err := s.api.Get(ctx, userResource+"/"+strconv.FormatInt(id, 10))
	if err != nil {
		return nil, loginFailure(ErrLoginFailed, err)
	}

	env, err := resp.Envelope()
	if err != nil {
		return nil, &LoginError{Kind: ErrLoginFailed, Err: err}
	}
	if !env.Success {
		return nil, &LoginError{Kind: ErrLoginFailed, Message: env.ErrorMessage}
	}

	var u models.User
	if err := env.First(&u); err != nil {
		return nil, &LoginError{Kind: ErrLoginFailed, Err: err}
	}
	return &u, nil
}

// SetAuth persists token and user together, then marks the session
// authenticated.
func (s *Session) SetAuth(ctx context.Context, token string, user *models.User) error {
	if user == nil {
		return fmt.Errorf("set auth: %w", tokens.ErrUserNotFound)
	}
	if err := s.store.SaveSession(ctx, token, user); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	u := *user
	s.mu.Lock()
	s.authenticated = true
	s.user = &u
	s.mu.Unlock()

	s.api.SetAuthHeader(ctx, token)
	s.setLanguage(u.Lang)
	return nil
}

// PurgeAuth logs the session out: the flag, the in-memory user, the auth
// header and both persisted artifacts are cleared. In-memory state is
// cleared even when storage fails.
func (s *Session) PurgeAuth(ctx context.Context) error {
	s.mu.Lock()
	s.authenticated = false
	s.user = nil
	s.mu.Unlock()

	s.api.ClearAuthHeader()

	if err := s.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// HandleUnauthorized is installed as the HTTP client's 401 hook. Every 401
// purges the session. The "login required" notice is skipped during Login,
// whose caller reports the rejected credentials itself.
func (s *Session) HandleUnauthorized(ctx context.Context) {
	s.purge(ctx)
	if inLogin(ctx) {
		s.logger.Debug(ctx, "login rejected with 401")
		return
	}
	s.notifier.Notify(ctx, notify.Notice{Level: notify.LevelInfo, Key: notify.KeyLoginRequired})
}

func (s *Session) purge(ctx context.Context) {
	if err := s.PurgeAuth(ctx); err != nil {
		s.logger.Error(ctx, "failed to purge session", "error", err)
	}
}

// restoreHeader puts back the header of the persisted session, if any.
func (s *Session) restoreHeader(ctx context.Context) {
	if s.IsAuthenticated() {
		s.api.SetAuthHeader(ctx, "")
		return
	}
	s.api.ClearAuthHeader()
}

func (s *Session) setLanguage(lang string) {
	if lang == "" {
		return
	}
	if ls, ok := s.notifier.(languageSetter); ok {
		ls.SetLanguage(lang)
	}
}

// loginFailure wraps a failed API call, keeping the backend message.
func loginFailure(kind error, err error) error {
	le := &LoginError{Kind: kind, Err: err}
	var rerr *client.ResponseError
	if errors.As(err, &rerr) {
		le.Message = rerr.Message()
	}
	return le
}
