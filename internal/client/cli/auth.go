package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/posclient/internal/client/client"
	"github.com/dmitrijs2005/posclient/internal/client/models"
	"github.com/dmitrijs2005/posclient/internal/client/notify"
	"github.com/dmitrijs2005/posclient/internal/client/services"
	"github.com/dmitrijs2005/posclient/internal/client/tokens"
)

// Login prompts, swapped out in tests.
var (
	promptLine     = PromptLine
	promptPassword = PromptPassword
)

// Login prompts for a user name and password and opens a session.
//
// The outcome is reported through the notifier: a welcome line on success,
// "user disabled", "wrong user name or password" for a 401, or the backend's
// errorMessage otherwise. Other HTTP failures were already reported by the
// client and are not repeated. The password buffer is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	defer a.syncMode(ctx)

	userName, err := promptLine(a.reader, "User name", a.out)
	if err != nil {
		return err
	}

	password, err := promptPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	user, err := a.session.Login(ctx, models.Credentials{Name: userName, Password: string(password)})
	if err != nil {
		a.reportLoginError(ctx, err)
		return err
	}

	a.notifier.Notify(ctx, notify.Notice{Level: notify.LevelSuccess, Key: notify.KeyLoginSuccess, Args: []any{user.FullName()}})
	return nil
}

func (a *App) reportLoginError(ctx context.Context, err error) {
	var rerr *client.ResponseError
	var lerr *services.LoginError

	switch {
	case errors.Is(err, services.ErrUserDisabled):
		a.notifier.Notify(ctx, notify.Notice{Level: notify.LevelError, Key: notify.KeyUserDisabled})
	case errors.Is(err, client.ErrUnauthorized):
		// the session skips its notice for a 401 during login
		if errors.As(err, &lerr) && lerr.Message != "" {
			a.notifier.Notify(ctx, notify.Notice{Level: notify.LevelError, Key: notify.KeyLoginFailed, Args: []any{lerr.Message}})
			return
		}
		a.notifier.Notify(ctx, notify.Notice{Level: notify.LevelError, Key: notify.KeyBadLogin})
	case errors.As(err, &rerr):
		a.logger.Debug(ctx, "login request failed", "error", err)
	case errors.As(err, &lerr) && lerr.Message != "":
		a.notifier.Notify(ctx, notify.Notice{Level: notify.LevelError, Key: notify.KeyLoginFailed, Args: []any{lerr.Message}})
	default:
		a.notifier.Notify(ctx, notify.Notice{Level: notify.LevelError, Key: notify.KeyLoginFailed, Args: []any{err.Error()}})
	}
}

// Logout purges the session, in memory and on disk.
func (a *App) Logout(ctx context.Context) error {
	defer a.syncMode(ctx)

	if err := a.session.PurgeAuth(ctx); err != nil {
		a.logger.Error(ctx, "logout failed", "error", err)
		return err
	}
	a.notifier.Notify(ctx, notify.Notice{Level: notify.LevelInfo, Key: notify.KeyLoggedOut})
	return nil
}

// Verify re-checks the stored token; an expired one logs the user out.
func (a *App) Verify(ctx context.Context) error {
	defer a.syncMode(ctx)

	if !a.session.VerifyAuth(ctx) {
		a.notifier.Notify(ctx, notify.Notice{Level: notify.LevelInfo, Key: notify.KeyLoginRequired})
		return services.ErrNotAuthenticated
	}
	printlnFn("Session is valid")
	return nil
}

// WhoAmI prints the session user, falling back to the stored record.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.session.IsAuthenticated() {
		printlnFn("Not logged in")
		return services.ErrNotAuthenticated
	}

	user := a.session.User()
	if user == nil {
		u, err := a.session.StoredUser(ctx)
		if err != nil {
			if !errors.Is(err, tokens.ErrUserNotFound) {
				a.logger.Error(ctx, "failed to load stored user", "error", err)
			}
			printlnFn("Logged in, user details unavailable")
			return err
		}
		user = u
	}

	printlnFn(formatUser(user))
	return nil
}

func formatUser(u *models.User) string {
	s := fmt.Sprintf("#%d %s", u.UserID, u.FullName())
	if u.Email != "" {
		s += " <" + u.Email + ">"
	}
	if u.IsAdmin {
		s += " [admin]"
	}
	if u.PosName != nil {
		s += fmt.Sprintf(", POS %s %s", u.PosName.WhsCode, u.PosName.WhsName)
	} else if u.PosCode != "" {
		s += ", POS " + u.PosCode
	}
	return s
}
